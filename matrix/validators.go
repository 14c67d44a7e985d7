// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - One canonical home for nil/shape/length/symmetry guards.
//  - Validators return "<Validator>: <sentinel>" so kernels can add their own
//    op tag on top and callers still match with errors.Is.
//
// Determinism & Performance:
//  - Pure checks, no allocations. ValidateSymmetric scans the upper triangle.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf tags a sentinel with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix if m == nil.
// Use as the first step of composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes both are non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks Rows == Cols. Assumes m is non-nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has exactly n entries.
// Broadcast kernels (centering, row/column scaling) call it before looping.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures both operands are non-nil and a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (bad tol),
//     ErrAsymmetry on the first violating pair.
//
// Notes:
//   - A pair containing NaN never compares greater than tol, so matrices
//     poisoned by NaN in mirrored positions pass; callers that care about
//     finiteness check it separately.
//
// Complexity:
//   - Time O(n²), Space O(1).
func ValidateSymmetric(m Matrix, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var i, j int
	var aij, aji float64
	var err error
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}
