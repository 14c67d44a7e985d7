// SPDX-License-Identifier: MIT

package wcov_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/wcov/matrix"
	"github.com/katalvlaran/wcov/wcov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const tol = 1e-12

// TestCompute_Scenario checks the worked 3×2 example with default options.
func TestCompute_Scenario(t *testing.T) {
	t.Parallel()

	res, err := wcov.Compute(scenario(t))
	require.NoError(t, err)

	assert.Equal(t, 3, res.NObs)
	assert.InDeltaSlice(t, []float64{3, 4}, res.Center, tol)
	requireClose(t, res.Cov, mustRows(t, [][]float64{{4, 4}, {4, 4}}), tol)
	assert.Nil(t, res.Weights, "weights were not supplied")
	assert.Nil(t, res.Cor, "correlation was not requested")
}

// TestCompute_UniformMatchesSampleCovariance compares the default estimate
// with gonum's sample covariance and the unweighted matrix.Covariance and
// matrix.Correlation.
func TestCompute_UniformMatchesSampleCovariance(t *testing.T) {
	t.Parallel()

	const n, p = 30, 4
	X := randomX(t, n, p, 11)

	res, err := wcov.Compute(X, wcov.WithCorrelation(true))
	require.NoError(t, err)

	var gcov, gcor mat.SymDense
	gx := mat.NewDense(n, p, X.RawData())
	stat.CovarianceMatrix(&gcov, gx, nil)
	stat.CorrelationMatrix(&gcor, gx, nil)

	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			cv, _ := res.Cov.At(i, j)
			cr, _ := res.Cor.At(i, j)
			assert.InDelta(t, gcov.At(i, j), cv, 1e-10, "cov[%d][%d]", i, j)
			assert.InDelta(t, gcor.At(i, j), cr, 1e-10, "cor[%d][%d]", i, j)
		}
	}

	plain, means, err := matrix.Covariance(X)
	require.NoError(t, err)
	requireClose(t, res.Cov, plain, 1e-10)
	assert.InDeltaSlice(t, means, res.Center, 1e-12)

	pearson, _, _, err := matrix.Correlation(X)
	require.NoError(t, err)
	requireClose(t, res.Cor, pearson, 1e-10)
}

// TestCompute_ExplicitUniformWeights: all-ones weights behave like no weights,
// except that the normalised weights are echoed.
func TestCompute_ExplicitUniformWeights(t *testing.T) {
	t.Parallel()

	X := randomX(t, 12, 3, 3)
	ones := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	absent, err := wcov.Compute(X)
	require.NoError(t, err)
	present, err := wcov.Compute(X, wcov.WithWeights(ones))
	require.NoError(t, err)

	requireClose(t, present.Cov, absent.Cov, tol)
	require.Len(t, present.Weights, 12)
	for _, w := range present.Weights {
		assert.InDelta(t, 1.0/12, w, tol)
	}
}

// TestCompute_MLUnbiasedRatio: Cov_ML = (1 − Σw²)·Cov_unbiased.
func TestCompute_MLUnbiasedRatio(t *testing.T) {
	t.Parallel()

	X := randomX(t, 20, 3, 5)
	w := randomWeights(20, 6)

	ml, err := wcov.Compute(X, wcov.WithWeights(w), wcov.WithMethod(wcov.MaximumLikelihood))
	require.NoError(t, err)
	ub, err := wcov.Compute(X, wcov.WithWeights(w))
	require.NoError(t, err)

	var s2 float64
	for _, v := range ml.Weights {
		s2 += v * v
	}
	scaled, err := matrix.Scale(ub.Cov, 1-s2)
	require.NoError(t, err)
	requireClose(t, ml.Cov, scaled, 1e-12)
	assert.Equal(t, ml.Center, ub.Center)
}

// TestCompute_SymmetryAndUnitDiagonal covers both backends.
func TestCompute_SymmetryAndUnitDiagonal(t *testing.T) {
	t.Parallel()

	X := randomX(t, 25, 5, 9)
	w := randomWeights(25, 10)

	for _, b := range []wcov.Backend{wcov.BackendNative, wcov.BackendGonum} {
		t.Run(b.String(), func(t *testing.T) {
			res, err := wcov.Compute(X, wcov.WithWeights(w), wcov.WithCorrelation(true), wcov.WithBackend(b))
			require.NoError(t, err)

			require.NoError(t, matrix.ValidateSymmetric(res.Cov, 0), "Cov must be exactly symmetric")
			require.NoError(t, matrix.ValidateSymmetric(res.Cor, tol))
			for j := 0; j < 5; j++ {
				d, _ := res.Cor.At(j, j)
				assert.InDelta(t, 1.0, d, tol, "cor[%d][%d]", j, j)
			}
		})
	}
}

// TestCompute_WeightScaleInvariance: multiplying all weights by a constant
// changes nothing after normalisation.
func TestCompute_WeightScaleInvariance(t *testing.T) {
	t.Parallel()

	X := mustRows(t, [][]float64{{1, 0}, {2, 1}, {4, 3}, {7, 2}})

	a, err := wcov.Compute(X, wcov.WithWeights([]float64{2, 2, 2, 2}))
	require.NoError(t, err)
	b, err := wcov.Compute(X, wcov.WithWeights([]float64{1, 1, 1, 1}))
	require.NoError(t, err)

	requireClose(t, a.Cov, b.Cov, tol)
	assert.Equal(t, a.Weights, b.Weights)

	c, err := wcov.Compute(X, wcov.WithWeights([]float64{3, 1, 1, 5}))
	require.NoError(t, err)
	d, err := wcov.Compute(X, wcov.WithWeights([]float64{0.3, 0.1, 0.1, 0.5}))
	require.NoError(t, err)
	requireClose(t, c.Cov, d.Cov, tol)
}

// TestCompute_CenterOverride: a supplied center is echoed verbatim and used
// instead of the weighted mean.
func TestCompute_CenterOverride(t *testing.T) {
	t.Parallel()

	center := []float64{0, 0}
	res, err := wcov.Compute(scenario(t), wcov.WithCenter(center), wcov.WithMethod(wcov.MaximumLikelihood))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0}, res.Center)
	// ML about the origin: mean of x xᵀ.
	want := mustRows(t, [][]float64{{35.0 / 3, 44.0 / 3}, {44.0 / 3, 56.0 / 3}})
	requireClose(t, res.Cov, want, tol)

	res.Center[0] = 99
	assert.Equal(t, 0.0, center[0], "Result.Center must not alias the caller's slice")
}

// TestCompute_DegenerateWeights: all mass on one row makes the unbiased
// denominator zero; the result is NaN, not an error.
func TestCompute_DegenerateWeights(t *testing.T) {
	t.Parallel()

	for _, b := range []wcov.Backend{wcov.BackendNative, wcov.BackendGonum} {
		t.Run(b.String(), func(t *testing.T) {
			res, err := wcov.Compute(scenario(t), wcov.WithWeights([]float64{1, 0, 0}), wcov.WithBackend(b))
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 2}, res.Center)
			assert.True(t, allNaN(t, res.Cov), "0/0 in every entry: %v", res.Cov)

			ml, err := wcov.Compute(scenario(t), wcov.WithWeights([]float64{1, 0, 0}),
				wcov.WithMethod(wcov.MaximumLikelihood), wcov.WithCorrelation(true), wcov.WithBackend(b))
			require.NoError(t, err)
			assert.Equal(t, []float64{0, 0, 0, 0}, ml.Cov.RawData())
			assert.True(t, allNaN(t, ml.Cor), "zero variances give NaN correlations")
		})
	}
}

// TestCompute_SingleObservation: n = 1 is accepted and yields NaN.
func TestCompute_SingleObservation(t *testing.T) {
	t.Parallel()

	res, err := wcov.Compute(mustRows(t, [][]float64{{1, 2, 3}}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.NObs)
	assert.Equal(t, []float64{1, 2, 3}, res.Center)
	assert.True(t, allNaN(t, res.Cov))
}

// TestCompute_NonFiniteWeights: negative and zero-sum weights flow through.
func TestCompute_NonFiniteWeights(t *testing.T) {
	t.Parallel()

	res, err := wcov.Compute(scenario(t), wcov.WithWeights([]float64{1, -1, 0}))
	require.NoError(t, err, "a zero weight sum is not validated")
	for _, v := range res.Weights {
		assert.True(t, math.IsNaN(v) || math.IsInf(v, 0), "weights divided by zero: %v", res.Weights)
	}

	res, err = wcov.Compute(scenario(t), wcov.WithWeights([]float64{2, -1, 1}), wcov.WithMethod(wcov.MaximumLikelihood))
	require.NoError(t, err, "negative weights are not validated")
	hasNaN := false
	for _, v := range res.Cov.RawData() {
		hasNaN = hasNaN || math.IsNaN(v)
	}
	assert.True(t, hasNaN, "sqrt of a negative weight must surface as NaN: %v", res.Cov)
}

// TestCompute_NonFiniteData: NaN in X propagates instead of erroring.
func TestCompute_NonFiniteData(t *testing.T) {
	t.Parallel()

	X, err := matrix.NewFromRows([][]float64{{1, math.NaN()}, {2, 3}, {4, 5}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	res, err := wcov.Compute(X)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Center[1]))
	c00, _ := res.Cov.At(0, 0)
	c11, _ := res.Cov.At(1, 1)
	assert.False(t, math.IsNaN(c00), "column 0 is finite and centred on a finite mean")
	assert.True(t, math.IsNaN(c11))
}

// TestCompute_Errors covers every structural rejection.
func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	X := scenario(t)
	tests := []struct {
		name string
		x    matrix.Matrix
		opts []wcov.Option
		want error
	}{
		{"short weights", X, []wcov.Option{wcov.WithWeights([]float64{1, 2})}, wcov.ErrShapeMismatch},
		{"long weights", X, []wcov.Option{wcov.WithWeights([]float64{1, 2, 3, 4})}, wcov.ErrShapeMismatch},
		{"empty weights", X, []wcov.Option{wcov.WithWeights([]float64{})}, wcov.ErrShapeMismatch},
		{"short center", X, []wcov.Option{wcov.WithCenter([]float64{1})}, wcov.ErrShapeMismatch},
		{"empty X", empty{}, nil, wcov.ErrShapeMismatch},
		{"nil X", nil, nil, matrix.ErrNilMatrix},
		{"method name", X, []wcov.Option{wcov.WithMethodName("mle")}, wcov.ErrInvalidMethod},
		{"method case", X, []wcov.Option{wcov.WithMethodName("ml")}, wcov.ErrInvalidMethod},
		{"method value", X, []wcov.Option{wcov.WithMethod(wcov.Method(7))}, wcov.ErrInvalidMethod},
		{"backend value", X, []wcov.Option{wcov.WithBackend(wcov.Backend(-1))}, wcov.ErrInvalidBackend},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := wcov.Compute(tc.x, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, res, "no partial result on error")
		})
	}
}

// TestCompute_InputsUntouched: X, weights and center are read-only.
func TestCompute_InputsUntouched(t *testing.T) {
	t.Parallel()

	X := randomX(t, 6, 2, 21)
	before := X.RawData()
	w := []float64{1, 2, 3, 4, 5, 6}
	c := []float64{0.5, -0.5}

	for _, x := range []matrix.Matrix{X, hide{X}} {
		_, err := wcov.Compute(x, wcov.WithWeights(w), wcov.WithCenter(c), wcov.WithCorrelation(true))
		require.NoError(t, err)
	}

	assert.Equal(t, before, X.RawData())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, w)
	assert.Equal(t, []float64{0.5, -0.5}, c)
}

// TestCompute_FallbackMatchesDense: any Matrix implementation gives the same
// result as *matrix.Dense.
func TestCompute_FallbackMatchesDense(t *testing.T) {
	t.Parallel()

	X := randomX(t, 15, 3, 31)
	w := randomWeights(15, 32)

	fast, err := wcov.Compute(X, wcov.WithWeights(w))
	require.NoError(t, err)
	slow, err := wcov.Compute(hide{X}, wcov.WithWeights(w))
	require.NoError(t, err)
	assert.Equal(t, fast.Cov.RawData(), slow.Cov.RawData())
	assert.Equal(t, fast.Center, slow.Center)
}

// TestCompute_BackendsAgree compares the native and gonum engines.
func TestCompute_BackendsAgree(t *testing.T) {
	t.Parallel()

	X := randomX(t, 40, 6, 41)
	w := randomWeights(40, 42)

	for _, m := range []wcov.Method{wcov.Unbiased, wcov.MaximumLikelihood} {
		native, err := wcov.Compute(X, wcov.WithWeights(w), wcov.WithMethod(m), wcov.WithCorrelation(true))
		require.NoError(t, err)
		gonum, err := wcov.Compute(X, wcov.WithWeights(w), wcov.WithMethod(m), wcov.WithCorrelation(true),
			wcov.WithBackend(wcov.BackendGonum))
		require.NoError(t, err)

		requireClose(t, gonum.Cov, native.Cov, 1e-12)
		requireClose(t, gonum.Cor, native.Cor, 1e-12)
	}
}

// TestCompute_PositiveSemidefinite: with non-negative weights every
// eigenvalue of Cov is ≥ 0 up to rounding.
func TestCompute_PositiveSemidefinite(t *testing.T) {
	t.Parallel()

	X := randomX(t, 8, 5, 51) // n close to p keeps small eigenvalues near 0
	res, err := wcov.Compute(X, wcov.WithWeights(randomWeights(8, 52)))
	require.NoError(t, err)

	vals, _, err := matrix.EigenSym(res.Cov)
	require.NoError(t, err)
	for k, v := range vals {
		assert.GreaterOrEqual(t, v, -1e-10*vals[0], "eigenvalue %d", k)
	}
}
