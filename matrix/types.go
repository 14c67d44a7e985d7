// SPDX-License-Identifier: MIT

package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Each method enforces bounds checking and returns errors on misuse instead
// of panicking. Users may implement it to provide custom storage layouts;
// kernels recognise *Dense and switch to flat-slice loops for it.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows (observations for statistics kernels).
	Rows() int

	// Cols returns the number of columns (variables for statistics kernels).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j is outside the matrix.
	At(i, j int) (float64, error)

	// Set assigns v at position (i, j).
	// Returns ErrOutOfRange on invalid indices and, for implementations that
	// enforce a finite-only policy, ErrNaNInf for non-finite values.
	Set(i, j int, v float64) error

	// Clone returns a deep copy independent of the receiver.
	Clone() Matrix
}
