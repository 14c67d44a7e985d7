// SPDX-License-Identifier: MIT

package hostio

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/wcov/matrix"
	"github.com/katalvlaran/wcov/wcov"
)

// Non-finite spellings used in JSON output.
const (
	jsonNaN    = "NaN"
	jsonPosInf = "+Inf"
	jsonNegInf = "-Inf"
)

// Float is a float64 whose JSON form keeps NaN and ±Inf as strings.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"` + jsonNaN + `"`), nil
	case math.IsInf(v, 1):
		return []byte(`"` + jsonPosInf + `"`), nil
	case math.IsInf(v, -1):
		return []byte(`"` + jsonNegInf + `"`), nil
	default:
		return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch s {
		case jsonNaN:
			*f = Float(math.NaN())
		case jsonPosInf:
			*f = Float(math.Inf(1))
		case jsonNegInf:
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("%q: %w", s, ErrBadNumber)
		}

		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)

	return nil
}

// Record is the JSON form of a wcov.Result.
type Record struct {
	Cov    [][]Float `json:"cov"`
	Center []Float   `json:"center"`
	NObs   int       `json:"n_obs"`
	Wt     []Float   `json:"wt,omitempty"`
	Cor    [][]Float `json:"cor,omitempty"`
	Eigen  []Float   `json:"eigen,omitempty"`
}

// NewRecord converts res. Wt and Cor stay nil when res carries none.
func NewRecord(res *wcov.Result) Record {
	rec := Record{
		Cov:    toRows(res.Cov),
		Center: toVec(res.Center),
		NObs:   res.NObs,
	}
	if res.Weights != nil {
		rec.Wt = toVec(res.Weights)
	}
	if res.Cor != nil {
		rec.Cor = toRows(res.Cor)
	}

	return rec
}

// SetEigen attaches the covariance spectrum (descending eigenvalues).
func (r *Record) SetEigen(vals []float64) { r.Eigen = toVec(vals) }

// WriteJSON encodes rec to w; indent selects two-space indentation.
func WriteJSON(w io.Writer, rec Record, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("hostio: encode result: %w", err)
	}

	return nil
}

// NonFinite counts NaN and ±Inf entries of m.
func NonFinite(m *matrix.Dense) int {
	if m == nil {
		return 0
	}
	n := 0
	m.Do(func(_, _ int, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			n++
		}

		return true
	})

	return n
}

func toVec(v []float64) []Float {
	out := make([]Float, len(v))
	for i, x := range v {
		out[i] = Float(x)
	}

	return out
}

func toRows(m *matrix.Dense) [][]Float {
	rows := m.ToRows()
	out := make([][]Float, len(rows))
	for i, r := range rows {
		out[i] = toVec(r)
	}

	return out
}
