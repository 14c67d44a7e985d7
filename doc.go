// Package wcov is a small, dependency-light toolkit for weighted covariance
// and correlation estimation on dense real matrices.
//
// 🚀 What is in the box?
//
//	• matrix/  — row-major Dense storage, validators, Transpose/Mul/Scale,
//	             broadcast centering, column statistics, Jacobi EigenSym
//	• wcov/    — Compute: weighted covariance (unbiased or ML), correlation,
//	             crossproduct, native and gonum backends
//	• cmd/covwt — CLI: CSV or YAML in, JSON out
//
// ✨ Guarantees
//
//   - Pure functions: inputs are never mutated, results are fresh matrices.
//   - Deterministic: fixed loop orders, no hidden goroutines.
//   - Honest numerics: degenerate input yields Inf/NaN, never a silent fix-up.
//
// Quick example:
//
//	X, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
//	res, _ := wcov.Compute(X, wcov.WithCorrelation(true))
//	// res.Center = [3 4], res.Cov = [[4 4] [4 4]], res.Cor = [[1 1] [1 1]]
//
// From the shell:
//
//	printf '1,2\n3,4\n5,6\n' | covwt --cor --weights 1,1,2 --method ML
//
//	go get github.com/katalvlaran/wcov/wcov
package wcov
