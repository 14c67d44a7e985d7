// SPDX-License-Identifier: MIT

package wcov

// Option configures one Compute call.
type Option func(*Options)

// Options is the resolved configuration of a Compute call.
//
// A nil weights or center slice means "absent": uniform weights and the
// weighted column mean respectively.
type Options struct {
	weights     []float64
	center      []float64
	correlation bool
	method      Method
	backend     Backend
	err         error
}

// WithWeights supplies one weight per observation. The slice is read, never
// modified. Weights need not sum to one; Compute normalises a copy.
// WithWeights(nil) leaves the weights absent.
func WithWeights(w []float64) Option {
	return func(o *Options) { o.weights = w }
}

// WithCenter supplies the centering vector, one entry per variable. It is used
// verbatim instead of the weighted column mean.
// WithCenter(nil) leaves the center absent.
func WithCenter(c []float64) Option {
	return func(o *Options) { o.center = c }
}

// WithCorrelation requests the correlation matrix alongside the covariance.
func WithCorrelation(on bool) Option {
	return func(o *Options) { o.correlation = on }
}

// WithMethod selects Unbiased (default) or MaximumLikelihood.
func WithMethod(m Method) Option {
	return func(o *Options) { o.method = m }
}

// WithMethodName selects the method by its boundary name ("unbiased" or "ML").
// An unknown name makes Compute fail with ErrInvalidMethod.
func WithMethodName(name string) Option {
	return func(o *Options) {
		m, err := ParseMethod(name)
		if err != nil {
			o.err = err

			return
		}
		o.method = m
	}
}

// WithBackend selects the crossproduct engine; BackendNative by default.
func WithBackend(b Backend) Option {
	return func(o *Options) { o.backend = b }
}

// Weights returns the supplied weights, or nil when absent.
func (o Options) Weights() []float64 { return o.weights }

// Center returns the supplied center, or nil when absent.
func (o Options) Center() []float64 { return o.center }

// Correlation reports whether correlation was requested.
func (o Options) Correlation() bool { return o.correlation }

// Method returns the selected method.
func (o Options) Method() Method { return o.method }

// Backend returns the selected backend.
func (o Options) Backend() Backend { return o.backend }

// NewOptions resolves opts over the defaults (no weights, no center,
// no correlation, Unbiased, BackendNative).
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// gatherOptions applies opts in order; later options win, nil entries are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{method: Unbiased, backend: BackendNative}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
