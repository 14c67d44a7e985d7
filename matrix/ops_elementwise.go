// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Private element-wise and broadcast micro-kernels (ew*) shared by the
//     statistics layer, so each tight loop exists exactly once.
//
// Determinism & Performance:
//   - Fixed i→j loops; *Dense inputs are walked as one flat row-major buffer.
//   - One output allocation per call; outputs carry the numeric policy off.

package matrix

import "math"

// ew kernel tags
const (
	ewTagSubCols   = "broadcastSubCols"
	ewTagScaleCols = "scaleCols"
	ewTagScaleRows = "scaleRows"
	ewTagAllClose  = "AllClose"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - v[j].
// Time: O(r*c). Space: O(r*c).
func ewBroadcastSubCols(X Matrix, v []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(ewTagSubCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(v, c); err != nil {
		return nil, matrixErrorf(ewTagSubCols, err)
	}
	out, err := newResultDense(r, c)
	if err != nil {
		return nil, matrixErrorf(ewTagSubCols, err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - v[j]
			}
		}

		return out, nil
	}

	var x float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			if x, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(ewTagSubCols, err)
			}
			out.data[base+j] = x - v[j]
		}
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Time: O(r*c). Space: O(r*c).
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(ewTagScaleCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, c); err != nil {
		return nil, matrixErrorf(ewTagScaleCols, err)
	}
	out, err := newResultDense(r, c)
	if err != nil {
		return nil, matrixErrorf(ewTagScaleCols, err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * scale[j]
			}
		}

		return out, nil
	}

	var x float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			if x, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(ewTagScaleCols, err)
			}
			out.data[base+j] = x * scale[j]
		}
	}

	return out, nil
}

// ewScaleRows computes out[i,j] = X[i,j] * scale[i].
// Time: O(r*c). Space: O(r*c).
func ewScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(ewTagScaleRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, r); err != nil {
		return nil, matrixErrorf(ewTagScaleRows, err)
	}
	out, err := newResultDense(r, c)
	if err != nil {
		return nil, matrixErrorf(ewTagScaleRows, err)
	}

	var i, j, base int
	var sf float64
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			sf = scale[i]
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * sf
			}
		}

		return out, nil
	}

	var x float64
	for i = 0; i < r; i++ {
		base = i * c
		sf = scale[i]
		for j = 0; j < c; j++ {
			if x, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(ewTagScaleRows, err)
			}
			out.data[base+j] = x * sf
		}
	}

	return out, nil
}

// ewAllClose reports whether |a-b| ≤ atol + rtol*|b| element-wise.
// NaN never matches; +Inf matches +Inf and -Inf matches -Inf.
// Time: O(r*c). Space: O(1).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(ewTagAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(ewTagAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(ewTagAllClose, err)
	}
	if math.IsNaN(rtol) || math.IsNaN(atol) {
		return false, matrixErrorf(ewTagAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	r, c := a.Rows(), a.Cols()
	var i, j int
	var x, y float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if x, err = a.At(i, j); err != nil {
				return false, matrixErrorf(ewTagAllClose, err)
			}
			if y, err = b.At(i, j); err != nil {
				return false, matrixErrorf(ewTagAllClose, err)
			}
			if !closeEnough(x, y, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeEnough is the scalar predicate behind ewAllClose.
func closeEnough(x, y, rtol, atol float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}

	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}
