// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Kernels return these sentinels wrapped with an operation tag
// ("<Op>: matrix: ..."), and callers match them with errors.Is.
// No exported function panics on user-triggered error conditions.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBadShape is returned for ragged row input or a data slice whose
	// length does not equal rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a broadcast vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric is not,
	// within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires
	// finite values (ingestion, Set, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNotConverged is returned by iterative kernels (EigenSym) that hit
	// their rotation budget before meeting the tolerance.
	ErrNotConverged = errors.New("matrix: iteration did not converge")

	// ErrNilMatrix indicates that a nil Matrix or nil vector argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
