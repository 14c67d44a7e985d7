// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Thin, documented entry points over the private ew* kernels and the
//     statistics implementations. Facades never loop themselves.

package matrix

// DenseCopy returns an independent *Dense holding the values of m.
// The copy carries the numeric policy off, so it can hold whatever m holds.
// Time: O(r*c). Space: O(r*c).
func DenseCopy(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("DenseCopy", err)
	}
	out, err := newResultDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf("DenseCopy", err)
	}
	if d, ok := m.(*Dense); ok {
		copy(out.data, d.data)

		return out, nil
	}
	c := m.Cols()
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("DenseCopy", err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN never matches; ±Inf only matches the same infinity.
// Time: O(r*c). Space: O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// CenterColumns returns Xc = X − mean(X, by columns) and the column means.
// Time: O(r*c). Space: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// WeightedColumnMeans returns means[j] = Σ_i w[i]*X[i,j].
// w is not normalised here; pass weights that already sum to 1 for a mean.
// Time: O(r*c). Space: O(c).
func WeightedColumnMeans(X Matrix, w []float64) ([]float64, error) {
	return weightedColumnMeans(X, w)
}

// CenterAt returns a copy of X with center subtracted from every row:
// out[i,j] = X[i,j] − center[j]. center must have Cols(X) entries.
// Time: O(r*c). Space: O(r*c).
func CenterAt(X Matrix, center []float64) (*Dense, error) {
	return ewBroadcastSubCols(X, center)
}

// ScaleRows returns a copy with row i multiplied by scale[i].
// Time: O(r*c). Space: O(r*c).
func ScaleRows(X Matrix, scale []float64) (*Dense, error) { return ewScaleRows(X, scale) }

// ScaleCols returns a copy with column j multiplied by scale[j].
// Time: O(r*c). Space: O(r*c).
func ScaleCols(X Matrix, scale []float64) (*Dense, error) { return ewScaleCols(X, scale) }

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(r-1).
// Returns Cov and the column means. Requires r >= 2 (ErrDimensionMismatch otherwise).
// Time: O(r*c²). Space: O(r*c + c²).
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// Correlation computes Pearson correlation of columns via z-scoring:
//
//	Z = (X - mean) / std,  std² = Σ (Xc)² / (r-1),  std==0 ⇒ column zeroed.
//	Corr = (Zᵀ Z)/(r-1).
//
// Returns Corr, means, stds.
// Time: O(r*c²). Space: O(r*c + c²).
func Correlation(X Matrix) (*Dense, []float64, []float64, error) { return correlation(X) }
