// SPDX-License-Identifier: MIT

// Package wcov estimates weighted covariance and correlation matrices.
//
// Rows of the data matrix X are observations, columns are variables. Compute
// normalises the observation weights to sum to one (uniform 1/n when none are
// given), centres X on either a caller-supplied vector or the weighted column
// mean, and forms the weighted crossproduct Σ_i w_i·(x_i−c)(x_i−c)ᵀ.
//
// Methods:
//
//	MaximumLikelihood   Cov = Σ_i w_i·(x_i−c)(x_i−c)ᵀ
//	Unbiased (default)  Cov = Σ_i w_i·(x_i−c)(x_i−c)ᵀ / (1 − Σ_i w_i²)
//
// With uniform weights the unbiased estimate equals the classic sample
// covariance with divisor n−1.
//
// Numeric degeneracies are not intercepted. A single observation, weights
// concentrated on one row, a zero weight sum, negative weights or a
// zero-variance column all yield ±Inf or NaN entries instead of an error.
// Only structural problems are errors: ErrShapeMismatch, ErrInvalidMethod and
// ErrInvalidBackend.
//
// Compute is a pure function. It never mutates X or the caller's slices, keeps
// no state between calls and is safe for concurrent use.
//
// Example:
//
//	X, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
//	res, err := wcov.Compute(X,
//		wcov.WithWeights([]float64{1, 1, 2}),
//		wcov.WithMethod(wcov.MaximumLikelihood),
//		wcov.WithCorrelation(true),
//	)
//	if err != nil {
//		// ErrShapeMismatch, ErrInvalidMethod, ...
//	}
//	fmt.Println(res.Cov, res.Center, res.Cor)
package wcov
