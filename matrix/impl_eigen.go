// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Eigen-decomposition of real symmetric matrices by classical Jacobi
//     rotations (largest off-diagonal pivot first).
//
// Determinism & Performance:
//   - Pivot search is a fixed i<j scan, so ties resolve to the first pair.
//   - Works on a private flat copy; O(n) per rotation plus an O(n²) pivot scan.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const opEigenSym = "EigenSym"

// jacobiRotationsPerEntry bounds the rotation budget at this many rotations
// per off-diagonal pair, plus a constant floor.
const (
	jacobiRotationsPerEntry = 30
	jacobiRotationsFloor    = 100
)

// EigenSym returns the eigenvalues of a symmetric matrix in descending order
// and the matching unit eigenvectors as the columns of V, so m = V·diag(vals)·Vᵀ.
//
// Implementation:
//   - Stage 1: validate non-nil, square, finite, symmetric within
//     eps·max|m| (eps from WithEpsilon, DefaultEpsilon otherwise). The zero
//     matrix needs no rotation.
//   - Stage 2: rotate away the largest off-diagonal entry until every
//     |A[i,j]| (i<j) is within the same scaled eps.
//   - Stage 3: sort eigenpairs by value, largest first.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf,
//     ErrAsymmetry, ErrNotConverged.
//
// Complexity:
//   - Time O(n²) per rotation scan, O(n⁴) worst case overall. Space O(n²).
func EigenSym(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	A, err := DenseCopy(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	n := A.r

	var scale float64
	for _, v := range A.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, matrixErrorf(opEigenSym, ErrNaNInf)
		}
		if math.Abs(v) > scale {
			scale = math.Abs(v)
		}
	}
	tol := o.eps * scale
	if err = ValidateSymmetric(A, tol); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	V, err := newResultDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		V.data[i*n+i] = 1
	}

	budget := jacobiRotationsPerEntry*n*n + jacobiRotationsFloor
	var p, q, r, rot int
	var maxOff, app, aqq, apq, theta, t, c, s, arp, arq float64
	for rot = 0; ; rot++ {
		// Stage 2a: largest off-diagonal pivot
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if v := math.Abs(A.data[i*n+j]); v > maxOff {
					maxOff, p, q = v, i, j
				}
			}
		}
		if maxOff <= tol {
			break
		}
		if rot == budget {
			return nil, nil, matrixErrorf(opEigenSym, fmt.Errorf("%d rotations: %w", budget, ErrNotConverged))
		}

		// Stage 2b: rotation zeroing A[p,q]
		app, aqq, apq = A.data[p*n+p], A.data[q*n+q], A.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		A.data[p*n+p] = app - t*apq
		A.data[q*n+q] = aqq + t*apq
		A.data[p*n+q], A.data[q*n+p] = 0, 0
		for r = 0; r < n; r++ {
			if r == p || r == q {
				continue
			}
			arp, arq = A.data[r*n+p], A.data[r*n+q]
			A.data[r*n+p] = c*arp - s*arq
			A.data[p*n+r] = A.data[r*n+p]
			A.data[r*n+q] = s*arp + c*arq
			A.data[q*n+r] = A.data[r*n+q]
		}

		// Stage 2c: accumulate V = V·P
		for r = 0; r < n; r++ {
			arp, arq = V.data[r*n+p], V.data[r*n+q]
			V.data[r*n+p] = c*arp - s*arq
			V.data[r*n+q] = s*arp + c*arq
		}
	}

	// Stage 3: sort descending, permuting eigenvector columns along
	order := make([]int, n)
	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		order[i] = i
		vals[i] = A.data[i*n+i]
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

	sorted := make([]float64, n)
	vecs, err := newResultDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	for j = 0; j < n; j++ {
		sorted[j] = vals[order[j]]
		for i = 0; i < n; i++ {
			vecs.data[i*n+j] = V.data[i*n+order[j]]
		}
	}

	return sorted, vecs, nil
}
