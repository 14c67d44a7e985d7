// SPDX-License-Identifier: MIT

package wcov

import (
	"fmt"

	"github.com/katalvlaran/wcov/matrix"
)

// Method selects the normalisation of the weighted crossproduct.
//
//   - Unbiased: divide by 1 − Σw², the default.
//   - MaximumLikelihood: no correction; the weighted second moment about the center.
type Method int

const (
	// Unbiased applies the reliability-weights correction 1/(1 − Σw²).
	Unbiased Method = iota

	// MaximumLikelihood returns the weighted crossproduct as is.
	MaximumLikelihood
)

// Method names as accepted by ParseMethod and produced by String.
const (
	MethodNameUnbiased = "unbiased"
	MethodNameML       = "ML"
)

// valid reports whether m is one of the declared methods.
func (m Method) valid() bool { return m == Unbiased || m == MaximumLikelihood }

// String returns the method name, or "Method(<n>)" for undeclared values.
func (m Method) String() string {
	switch m {
	case Unbiased:
		return MethodNameUnbiased
	case MaximumLikelihood:
		return MethodNameML
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "unbiased" and "ML" (case-sensitive) to a Method.
// Any other name yields ErrInvalidMethod.
func ParseMethod(name string) (Method, error) {
	switch name {
	case MethodNameUnbiased:
		return Unbiased, nil
	case MethodNameML:
		return MaximumLikelihood, nil
	default:
		return Unbiased, fmt.Errorf("%q: %w", name, ErrInvalidMethod)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%s: %w", m, ErrInvalidMethod)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// Backend selects the engine that forms the crossproduct.
type Backend int

const (
	// BackendNative uses the matrix package kernels.
	BackendNative Backend = iota

	// BackendGonum uses gonum's symmetric rank-k update (BLAS syrk).
	BackendGonum
)

// Backend names as accepted by ParseBackend.
const (
	BackendNameNative = "native"
	BackendNameGonum  = "gonum"
)

func (b Backend) valid() bool { return b == BackendNative || b == BackendGonum }

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendNative:
		return BackendNameNative
	case BackendGonum:
		return BackendNameGonum
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps "native" and "gonum" to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case BackendNameNative:
		return BackendNative, nil
	case BackendNameGonum:
		return BackendGonum, nil
	default:
		return BackendNative, fmt.Errorf("%q: %w", name, ErrInvalidBackend)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if !b.valid() {
		return nil, fmt.Errorf("%s: %w", b, ErrInvalidBackend)
	}

	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed

	return nil
}

// Result bundles everything one Compute call produces.
//
// Fields:
//   - Cov: p×p covariance matrix.
//   - Center: the p-vector X was centred on (supplied or computed).
//   - NObs: number of observations n (rows of X).
//   - Weights: normalised weights; nil unless weights were supplied.
//   - Cor: p×p correlation matrix; nil unless correlation was requested.
//
// Cov and Cor are allocated with the matrix numeric policy off and may hold
// ±Inf or NaN for degenerate input.
type Result struct {
	Cov     *matrix.Dense
	Center  []float64
	NObs    int
	Weights []float64
	Cor     *matrix.Dense
}
