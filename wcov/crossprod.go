// SPDX-License-Identifier: MIT

package wcov

import (
	"math"

	"github.com/katalvlaran/wcov/matrix"
	"gonum.org/v1/gonum/mat"
)

// Crossproduct returns Xᵀ·X, the p×p matrix of column inner products.
//
// Errors:
//   - matrix.ErrNilMatrix for nil X; ErrShapeMismatch for zero rows or columns.
//
// Complexity:
//   - Time O(n·p²), Space O(n·p + p²).
func Crossproduct(X matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, wcovErrorf(opCrossproduct, err)
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return nil, wcovErrorf(opCrossproduct, ErrShapeMismatch)
	}

	C, err := weightedCrossproduct(X, nil, BackendNative)
	if err != nil {
		return nil, wcovErrorf(opCrossproduct, err)
	}

	return C, nil
}

// weightedCrossproduct returns Σ_i w[i]·outer(M[i], M[i]).
//
// Implementation:
//   - Stage 1: when w is non-nil, scale row i of a copy of M by sqrt(w[i]).
//     A nil w skips scaling and yields the plain crossproduct Mᵀ·M.
//   - Stage 2: hand the (scaled) rows to the selected backend.
//
// M is never mutated. Negative weights give NaN rows through sqrt.
func weightedCrossproduct(M matrix.Matrix, w []float64, b Backend) (*matrix.Dense, error) {
	Y := M
	if w != nil {
		sw := make([]float64, len(w))
		for i, wi := range w {
			sw[i] = math.Sqrt(wi)
		}
		scaled, err := matrix.ScaleRows(M, sw)
		if err != nil {
			return nil, err
		}
		Y = scaled
	}

	if b == BackendGonum {
		return gonumCrossproduct(Y)
	}

	return nativeCrossproduct(Y)
}

// nativeCrossproduct forms Yᵀ·Y with matrix.Transpose and matrix.Mul, then
// copies the upper triangle onto the lower one so the result is exactly symmetric.
func nativeCrossproduct(Y matrix.Matrix) (*matrix.Dense, error) {
	Yt, err := matrix.Transpose(Y)
	if err != nil {
		return nil, err
	}
	G, err := matrix.Mul(Yt, Y)
	if err != nil {
		return nil, err
	}
	C, err := asDense(G)
	if err != nil {
		return nil, err
	}

	p := C.Rows()
	var i, j int
	var v float64
	for i = 0; i < p; i++ {
		for j = i + 1; j < p; j++ {
			if v, err = C.At(i, j); err != nil {
				return nil, err
			}
			if err = C.Set(j, i, v); err != nil {
				return nil, err
			}
		}
	}

	return C, nil
}

// gonumCrossproduct forms Yᵀ·Y through mat.SymDense.SymOuterK on the p×n
// transpose of Y. The BLAS kernel only touches one triangle; reading the
// SymDense back mirrors it.
func gonumCrossproduct(Y matrix.Matrix) (*matrix.Dense, error) {
	Yt, err := matrix.Transpose(Y)
	if err != nil {
		return nil, err
	}
	YtD, err := asDense(Yt)
	if err != nil {
		return nil, err
	}

	p, n := YtD.Rows(), YtD.Cols()
	x := mat.NewDense(p, n, YtD.RawData())
	var s mat.SymDense
	s.SymOuterK(1, x)

	out := make([]float64, p*p)
	var i, j int
	for i = 0; i < p; i++ {
		for j = 0; j < p; j++ {
			out[i*p+j] = s.At(i, j)
		}
	}

	return matrix.NewFromData(p, p, out, matrix.WithNoValidateNaNInf())
}

// asDense returns m itself when it is a *matrix.Dense, otherwise a copy.
func asDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}

	return matrix.DenseCopy(m)
}
