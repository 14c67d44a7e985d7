// SPDX-License-Identifier: MIT

package wcov

import (
	"fmt"

	"github.com/katalvlaran/wcov/matrix"
)

// Compute estimates the weighted covariance of the columns of X.
//
// Implementation:
//   - Stage 1: resolve options; reject invalid method/backend, nil or empty X,
//     and weights/center of the wrong length.
//   - Stage 2: normalise weights by their sum (uniform 1/n when absent).
//   - Stage 3: center = supplied vector, else Σ_i w[i]·X[i,·].
//   - Stage 4: Xc = X − center; Cov = Σ_i w[i]·Xc[i]ᵀXc[i].
//   - Stage 5: Unbiased divides Cov by 1 − Σw². A zero denominator is not
//     guarded and yields ±Inf/NaN.
//   - Stage 6: Cor = CovToCor(Cov) when requested.
//
// Errors:
//   - ErrInvalidMethod, ErrInvalidBackend, ErrShapeMismatch, matrix.ErrNilMatrix.
//     No partial Result is returned with an error.
//
// Complexity:
//   - Time O(n·p²), Space O(n·p + p²).
func Compute(X matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if o.err != nil {
		return nil, wcovErrorf(opCompute, o.err)
	}
	if !o.method.valid() {
		return nil, wcovErrorf(opCompute, fmt.Errorf("%s: %w", o.method, ErrInvalidMethod))
	}
	if !o.backend.valid() {
		return nil, wcovErrorf(opCompute, fmt.Errorf("%s: %w", o.backend, ErrInvalidBackend))
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, wcovErrorf(opCompute, err)
	}

	n, p := X.Rows(), X.Cols()
	if n == 0 || p == 0 {
		return nil, wcovErrorf(opCompute, fmt.Errorf("X is %dx%d: %w", n, p, ErrShapeMismatch))
	}
	if o.weights != nil && len(o.weights) != n {
		return nil, wcovErrorf(opCompute,
			fmt.Errorf("%d weights for %d observations: %w", len(o.weights), n, ErrShapeMismatch))
	}
	if o.center != nil && len(o.center) != p {
		return nil, wcovErrorf(opCompute,
			fmt.Errorf("center has %d entries for %d variables: %w", len(o.center), p, ErrShapeMismatch))
	}

	w := normalizeWeights(o.weights, n)

	var center []float64
	var err error
	if o.center != nil {
		center = make([]float64, p)
		copy(center, o.center)
	} else if center, err = matrix.WeightedColumnMeans(X, w); err != nil {
		return nil, wcovErrorf(opCompute, err)
	}

	Xc, err := matrix.CenterAt(X, center)
	if err != nil {
		return nil, wcovErrorf(opCompute, err)
	}
	cov, err := weightedCrossproduct(Xc, w, o.backend)
	if err != nil {
		return nil, wcovErrorf(opCompute, err)
	}
	if o.method == Unbiased {
		denom := 1 - sumSquares(w)
		if err = cov.Apply(func(_, _ int, v float64) float64 { return v / denom }); err != nil {
			return nil, wcovErrorf(opCompute, err)
		}
	}

	res := &Result{Cov: cov, Center: center, NObs: n}
	if o.weights != nil {
		res.Weights = w
	}
	if o.correlation {
		if res.Cor, err = CovToCor(cov); err != nil {
			return nil, wcovErrorf(opCompute, err)
		}
	}

	return res, nil
}

// normalizeWeights returns a fresh slice w/Σw, or n copies of 1/n when w is nil.
// A zero or non-finite sum is divided through as is.
func normalizeWeights(w []float64, n int) []float64 {
	out := make([]float64, n)
	if w == nil {
		for i := range out {
			out[i] = 1 / float64(n)
		}

		return out
	}

	var sum float64
	for _, v := range w {
		sum += v
	}
	for i, v := range w {
		out[i] = v / sum
	}

	return out
}

// sumSquares returns Σ v².
func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}

	return s
}
