// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Cache-friendly row-major buffer with the explicit offset formula i*cols + j.
//   - Errors instead of panics at the public surface (At/Set/constructors).
//   - Per-instance numeric policy (finite-only ingestion) with one source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; NewFromRows/NewFromData: O(r*c) copy;
//     At/Set: O(1); Clone/Row/RawData: O(r*c) or O(c) copies.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// method tags used in error wrappers
const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxApply    = "Apply"
	ctxRow      = "Row"
	ctxFromRows = "NewFromRows"
	ctxFromData = "NewFromData"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf attaches the Dense method name and coordinates to a sentinel.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions.
//   - data is a flat buffer of length r*c (offset = i*c + j).
//   - validateNaNInf rejects NaN/Inf in Set and Apply when true.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix with the default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// newResultDense allocates a kernel output. Outputs never police values:
// non-finite results of IEEE arithmetic must reach the caller unchanged.
func newResultDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFromRows copies a rectangular [][]float64 (one inner slice per row)
// into a new Dense.
//
// Implementation:
//   - Stage 1: resolve options; validate len(rows)>0 and len(rows[0])>0.
//   - Stage 2: copy each row, rejecting ragged rows and (under policy) NaN/Inf.
//
// Errors:
//   - ErrInvalidDimensions for empty input.
//   - ErrBadShape for ragged rows.
//   - ErrNaNInf for a non-finite value while the policy is on.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - The caller's slices are never retained.
func NewFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrInvalidDimensions)
	}

	r, c := len(rows), len(rows[0])
	d := &Dense{r: r, c: c, data: make([]float64, r*c), validateNaNInf: o.validateNaNInf}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(rows[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			v = rows[i][j]
			if o.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return nil, fmt.Errorf("%s: %w", ctxFromRows, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
			d.data[i*c+j] = v
		}
	}

	return d, nil
}

// NewFromData builds an r×c Dense from a row-major flat slice (copied).
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrBadShape when len(data) != rows*cols.
//   - ErrNaNInf for a non-finite value while the policy is on.
func NewFromData(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromData, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len(data)=%d, want %d: %w", ctxFromData, len(data), rows*cols, ErrBadShape)
	}
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: %w", ctxFromData, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf))
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf bounds-checks (row,col) and returns the flat offset.
// The bare sentinel is returned; At/Set add method context.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v under the policy.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// RawData returns a copy of the row-major buffer (len == Rows()*Cols()).
func (m *Dense) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// ToRows returns the matrix as freshly allocated [][]float64 rows.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// String renders rows as lines of comma-separated %g values.
// Intended for diagnostics and examples, not hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element in row-major order; f returning false stops the walk.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in place, in row-major order.
//
// Behavior highlights:
//   - Respects validateNaNInf: a non-finite result aborts with ErrNaNInf.
//   - Elements written before the error stay updated; transform a Clone for
//     all-or-nothing semantics.
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}
