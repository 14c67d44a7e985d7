// SPDX-License-Identifier: MIT

package wcov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/wcov/matrix"
)

// CovToCor converts a covariance matrix into a correlation matrix:
//
//	invsd[j] = 1 / sqrt(cov[j][j])
//	cor[i][j] = cov[i][j] * invsd[i] * invsd[j]
//
// Rows are scaled first, then columns. Zero or negative variances are not
// special-cased: they produce ±Inf or NaN in the affected row and column.
//
// Errors:
//   - matrix.ErrNilMatrix for nil cov; ErrShapeMismatch for a non-square cov.
//
// Complexity:
//   - Time O(p²), Space O(p²).
func CovToCor(cov matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(cov); err != nil {
		return nil, wcovErrorf(opCovToCor, err)
	}
	if err := matrix.ValidateSquare(cov); err != nil {
		return nil, wcovErrorf(opCovToCor, fmt.Errorf("%w: %w", err, ErrShapeMismatch))
	}

	p := cov.Rows()
	invsd := make([]float64, p)
	var d float64
	var err error
	for j := 0; j < p; j++ {
		if d, err = cov.At(j, j); err != nil {
			return nil, wcovErrorf(opCovToCor, err)
		}
		invsd[j] = 1 / math.Sqrt(d)
	}

	R, err := matrix.ScaleRows(cov, invsd)
	if err != nil {
		return nil, wcovErrorf(opCovToCor, err)
	}
	R, err = matrix.ScaleCols(R, invsd)
	if err != nil {
		return nil, wcovErrorf(opCovToCor, err)
	}

	return R, nil
}
