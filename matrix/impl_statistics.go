// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics as deterministic compositions over the canonical
//     kernels (Transpose/Mul/Scale) and the ew* micro-kernels.
//
// Exposed API (see api.go):
//   - CenterColumns(X)          -> (Xc, means)         // subtract per-column mean
//   - WeightedColumnMeans(X, w) -> means               // Σ_i w[i]*X[i,j]
//   - Covariance(X)             -> (Cov, means)        // (Xcᵀ Xc)/(r-1)
//   - Correlation(X)            -> (Corr, means, stds) // Pearson; std==0 → zeroed column
//
// Determinism & Performance:
//   - Fixed i→j traversal; *Dense inputs read straight from the flat buffer.

package matrix

import "math"

const (
	opCenterColumns       = "CenterColumns"
	opWeightedColumnMeans = "WeightedColumnMeans"
	opCovariance          = "Covariance"
	opCorrelation         = "Correlation"
)

// columnSums accumulates Σ_i w[i]*X[i,j] for every column j.
// A nil w means unit weights.
func columnSums(X Matrix, w []float64) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, c)

	var i, j, base int
	var wi, v float64
	var err error
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			wi = 1
			if w != nil {
				wi = w[i]
			}
			for j = 0; j < c; j++ {
				sums[j] += wi * d.data[base+j]
			}
		}

		return sums, nil
	}

	for i = 0; i < r; i++ {
		wi = 1
		if w != nil {
			wi = w[i]
		}
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			sums[j] += wi * v
		}
	}

	return sums, nil
}

// centerColumns subtracts the per-column mean from every element.
//
// Implementation:
//   - Stage 1: validate X.
//   - Stage 2: column sums in one i→j pass, then divide by r.
//   - Stage 3: ewBroadcastSubCols builds the centered copy.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) (+ O(c) means).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return nil, nil, matrixErrorf(opCenterColumns, ErrInvalidDimensions)
	}

	means, err := columnSums(X, nil)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	invR := 1.0 / float64(X.Rows())
	for j := range means {
		means[j] *= invR
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// weightedColumnMeans returns means[j] = Σ_i w[i]*X[i,j].
//
// Behavior highlights:
//   - w is used as given; it is the caller's job to normalise it to Σw = 1.
//     Unnormalised or negative weights are not rejected.
//
// Errors:
//   - ErrNilMatrix (X or w nil), ErrDimensionMismatch (len(w) != Rows(X)).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func weightedColumnMeans(X Matrix, w []float64) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opWeightedColumnMeans, err)
	}
	if err := ValidateVecLen(w, X.Rows()); err != nil {
		return nil, matrixErrorf(opWeightedColumnMeans, err)
	}

	means, err := columnSums(X, w)
	if err != nil {
		return nil, matrixErrorf(opWeightedColumnMeans, err)
	}

	return means, nil
}

// covariance computes the sample covariance of columns, (Xcᵀ Xc)/(r-1).
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when r < 2.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Cov, err := Scale(G, 1.0/float64(X.Rows()-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return Cov.(*Dense), means, nil
}

// correlation computes Pearson correlation of columns via z-scoring:
// Z = Xc*diag(1/std), Corr = (Zᵀ Z)/(r-1).
//
// Behavior highlights:
//   - A column with std == 0 is zeroed, so its row/column of Corr is 0
//     (diagonal included). Weighted estimation in package wcov does NOT do
//     this; it lets the division produce Inf/NaN.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when r < 2.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	// Sample standard deviations straight from the centered buffer.
	c := Xc.c
	stds := make([]float64, c)
	var i, j, base int
	var v float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			v = Xc.data[base+j]
			stds[j] += v * v
		}
	}
	invStd := make([]float64, c)
	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] * inv)
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}

	Z, err := ewScaleCols(Xc, invStd)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Zt, err := Transpose(Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	G, err := Mul(Zt, Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Corr, err := Scale(G, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	return Corr.(*Dense), means, stds, nil
}
