// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
//
// Only ingestion is configurable: whether constructors and Set reject
// NaN/±Inf, and the tolerance used by structural checks. Kernel outputs are
// never policed (see doc.go).
package matrix

import "math"

// Defaults (single source of truth).
const (
	// DefaultEpsilon is the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates Options. Applying the same Option twice is harmless.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; public
// entry points accept ...Option and resolve them with gatherOptions.
type Options struct {
	eps            float64
	validateNaNInf bool
}

// WithEpsilon sets the tolerance for structural checks.
// Panics on NaN, ±Inf or negative eps (programmer error).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables finite-only ingestion (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets constructors and Set accept NaN and ±Inf.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// Epsilon reports the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether the finite-only policy is on.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// NewMatrixOptions resolves opts over the package defaults.
func NewMatrixOptions(opts ...Option) Options { return gatherOptions(opts...) }

// gatherOptions applies user options in order; later options win.
// nil entries are skipped so callers can build option slices conditionally.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
