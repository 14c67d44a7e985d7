// SPDX-License-Identifier: MIT

package wcov_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/wcov/matrix"
	"github.com/stretchr/testify/require"
)

// hide masks the concrete *matrix.Dense so kernels take their At fallback.
type hide struct{ matrix.Matrix }

// empty reports a 0×0 shape; no valid matrix.Dense can.
type empty struct{}

func (empty) Rows() int { return 0 }
func (empty) Cols() int { return 0 }
func (empty) At(int, int) (float64, error) { return 0, matrix.ErrOutOfRange }
func (empty) Set(int, int, float64) error { return matrix.ErrOutOfRange }
func (e empty) Clone() matrix.Matrix { return e }

// scenario is the 3×2 data set whose covariance is [[4,4],[4,4]].
func scenario(t testing.TB) *matrix.Dense {
	t.Helper()

	return mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
}

func mustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return d
}

// randomX returns an n×p matrix of U(-5,5) values for a fixed seed.
func randomX(t testing.TB, n, p int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, n*p)
	for k := range vals {
		vals[k] = rng.Float64()*10 - 5
	}
	d, err := matrix.NewFromData(n, p, vals)
	require.NoError(t, err)

	return d
}

// randomWeights returns n positive weights in (0.1, 2.1).
func randomWeights(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.1 + 2*rng.Float64()
	}

	return w
}

// requireClose fails unless a and b agree within |a-b| ≤ tol*(1+|b|).
func requireClose(t testing.TB, a, b matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, tol, tol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ:\n%v\nvs\n%v", a, b)
}

// allNaN reports whether every entry of m is NaN.
func allNaN(t testing.TB, m *matrix.Dense) bool {
	t.Helper()
	for _, v := range m.RawData() {
		if !math.IsNaN(v) {
			return false
		}
	}

	return true
}
