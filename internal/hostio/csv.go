// SPDX-License-Identifier: MIT

package hostio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/wcov/matrix"
)

var (
	// ErrNoData indicates an input without a single data row.
	ErrNoData = errors.New("hostio: no data rows")

	// ErrBadNumber indicates a field that does not parse as a float.
	ErrBadNumber = errors.New("hostio: bad number")
)

// ReadCSV parses a numeric CSV table into an n×p matrix.
//
// Behavior highlights:
//   - header=true consumes the first record as column names.
//   - Fields are trimmed; "NaN", "Inf", "+Inf", "-Inf" are accepted and kept.
//   - Ragged rows are rejected by encoding/csv (FieldsPerRecord).
//   - Lines starting with '#' are comments.
func ReadCSV(r io.Reader, header bool) (*matrix.Dense, []string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var names []string
	if header {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoData
		}
		if err != nil {
			return nil, nil, fmt.Errorf("hostio: read header: %w", err)
		}
		names = make([]string, len(rec))
		for j, s := range rec {
			names[j] = strings.TrimSpace(s)
		}
	}

	var rows [][]float64
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("hostio: read csv: %w", err)
		}
		row, err := parseFields(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("hostio: row %d: %w", line, err)
		}
		rows = append(rows, row)
		line++
	}
	if len(rows) == 0 {
		return nil, nil, ErrNoData
	}

	X, err := matrix.NewFromRows(rows, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, nil, fmt.Errorf("hostio: %w", err)
	}

	return X, names, nil
}

// ParseVector parses a comma-separated list such as "1, 2.5,3".
// An empty string yields nil, meaning "absent".
func ParseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	return parseFields(strings.Split(s, ","))
}

// ReadVector reads numbers separated by commas and/or newlines.
func ReadVector(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var out []float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("hostio: read vector: %w", err)
		}
		vals, err := parseFields(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}

	return out, nil
}

func parseFields(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q: %w", j, f, ErrBadNumber)
		}
		out[j] = v
	}

	return out, nil
}
