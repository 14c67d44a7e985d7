// SPDX-License-Identifier: MIT
// Package matrix: canonical linear-algebra kernels.
//
// Purpose:
//   - Transpose, Scale and Mul over any Matrix, with *Dense flat-slice fast-paths.
//   - Operation tags for uniform "<Op>: <cause>" error wrapping.
//
// Notes:
//   - Inputs are never mutated; every kernel returns a fresh *Dense allocated
//     with the numeric policy off, so Inf/NaN produced by arithmetic survive.
//   - Mul does not skip zero operands: 0*Inf must stay NaN.

package matrix

import "fmt"

// Operation name constants for error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the matrix product a×b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate the r×c result.
//   - Stage 2: *Dense×*Dense runs an i→k→j loop over flat buffers;
//     anything else falls back to an i→j→k At loop.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, wrapped At errors.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := newResultDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av, bv, acc float64
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var offA, offB, offR int
			for i = 0; i < aRows; i++ {
				offA = i * aCols
				offR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[offA+k]
					offB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[offR+j] += av * db.data[offB+j]
					}
				}
			}

			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			acc = 0
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				acc += av * bv
			}
			res.data[i*bCols+j] = acc
		}
	}

	return res, nil
}

// Transpose returns a new c×r matrix mᵀ.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newResultDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < rows; i++ {
			base = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[base+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha*m as a new matrix. NaN/Inf in m or alpha propagate.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newResultDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range dm.data {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}
