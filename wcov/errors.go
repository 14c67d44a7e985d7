// SPDX-License-Identifier: MIT

package wcov

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates weights or center whose length does not
	// match X, or an X with zero rows or columns.
	ErrShapeMismatch = errors.New("wcov: shape mismatch")

	// ErrInvalidMethod indicates a method name or value outside {unbiased, ML}.
	ErrInvalidMethod = errors.New("wcov: invalid method")

	// ErrInvalidBackend indicates a backend name or value outside {native, gonum}.
	ErrInvalidBackend = errors.New("wcov: invalid backend")
)

// Operation tags for error wrapping.
const (
	opCompute      = "Compute"
	opCrossproduct = "Crossproduct"
	opCovToCor     = "CovToCor"
)

// wcovErrorf wraps err with an operation tag, preserving it for errors.Is.
func wcovErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
