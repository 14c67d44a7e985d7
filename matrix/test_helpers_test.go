// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Small deterministic fixtures and comparison utilities shared by the
//     kernel and statistics tests.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/wcov/matrix"
)

// hide wraps any Matrix to mask its concrete type, forcing kernels onto
// their generic At/Set fallback instead of the *Dense fast-path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals.
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewFromData(r, c, vals)
	if err != nil {
		t.Fatalf("NewFromData(%d,%d): %v", r, c, err)
	}

	return d
}

// RandomDense fills an r×c *Dense with U(-1,1) values for a fixed seed.
func RandomDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = rng.Float64()*2 - 1
	}

	return NewFilledDense(t, r, c, vals)
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// CompareClose fails unless a and b have the same shape and are
// element-wise close under |a-b| ≤ atol + rtol*|b|.
func CompareClose(t testing.TB, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	if err != nil {
		t.Fatalf("AllClose: %v", err)
	}
	if !ok {
		t.Fatalf("matrices differ:\n%v\nvs\n%v", a, b)
	}
}

// sliceClose compares two vectors element-wise with the AllClose predicate.
func sliceClose(t testing.TB, got, want []float64, rtol, atol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d", len(got), len(want))
	}
	for k := range got {
		if math.Abs(got[k]-want[k]) > atol+rtol*math.Abs(want[k]) {
			t.Fatalf("[%d]=%g, want %g", k, got[k], want[k])
		}
	}
}
