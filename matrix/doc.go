// SPDX-License-Identifier: MIT

// Package matrix is the dense numeric substrate used by the covariance
// estimator in package wcov.
//
// The matrix package provides:
//
//   - Matrix, a small bounds-checked interface over two-dimensional float64 data.
//   - Dense, a row-major implementation backed by a single flat slice.
//   - Canonical kernels (Transpose, Scale, Mul) with *Dense fast-paths and a
//     generic At/Set fallback for any other Matrix implementation.
//   - Column statistics: plain and weighted column means, broadcast centering,
//     row/column scaling, sample covariance and Pearson correlation.
//
// Numeric policy:
//
//	A Dense built by the public constructors rejects NaN/±Inf on Set and on
//	ingestion (NewFromRows, NewFromData) unless WithNoValidateNaNInf is passed.
//	Kernel OUTPUTS are allocated with the policy off: whatever IEEE arithmetic
//	produces (including Inf and NaN from degenerate input) is returned as-is.
//
// Determinism:
//
//	All loops run in a fixed i→j (or flat 0..n-1) order; there is no hidden
//	parallelism and no randomness, so equal inputs give bitwise-equal outputs.
//
//	import "github.com/katalvlaran/wcov/matrix"
//
//	X, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
//	cov, means, _ := matrix.Covariance(X) // cov = [[4 4] [4 4]], means = [3 4]
package matrix
