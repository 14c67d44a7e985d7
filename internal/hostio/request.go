// SPDX-License-Identifier: MIT

package hostio

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/wcov/matrix"
	"github.com/katalvlaran/wcov/wcov"
	"gopkg.in/yaml.v2"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("hostio: invalid request")

// Request is the YAML form of one estimation call.
//
//	data:
//	  - [1, 2]
//	  - [3, 4]
//	  - [5, 6]
//	weights: [1, 1, 2]
//	center: [0, 0]
//	method: ML
//	cor: true
//	backend: gonum
type Request struct {
	Data        [][]float64 `yaml:"data" validate:"required,min=1,dive,min=1"`
	Weights     []float64   `yaml:"weights,omitempty" validate:"omitempty,min=1"`
	Center      []float64   `yaml:"center,omitempty" validate:"omitempty,min=1"`
	Method      string      `yaml:"method,omitempty" validate:"omitempty,oneof=unbiased ML"`
	Correlation bool        `yaml:"cor,omitempty"`
	Backend     string      `yaml:"backend,omitempty" validate:"omitempty,oneof=native gonum"`
}

// newValidator builds a validator that reports YAML field names and checks
// that Data is rectangular.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(Request)
		if len(req.Data) == 0 {
			return
		}
		p := len(req.Data[0])
		for _, row := range req.Data[1:] {
			if len(row) != p {
				sl.ReportError(req.Data, "data", "Data", "rectangular", "")

				return
			}
		}
	}, Request{})

	return v
}

var validate = newValidator()

// Validate checks the request's structure. Shape agreement between data,
// weights and center is left to wcov.Compute.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
			}

			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
		}

		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

// DecodeRequest reads and validates a YAML request.
func DecodeRequest(r io.Reader) (*Request, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("hostio: read request: %w", err)
	}
	var req Request
	if err = yaml.UnmarshalStrict(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err = req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// Matrix returns Data as an n×p matrix. Non-finite values are kept.
func (r *Request) Matrix() (*matrix.Dense, error) {
	return matrix.NewFromRows(r.Data, matrix.WithNoValidateNaNInf())
}

// Options translates the request into wcov options. Empty Method and Backend
// fall back to the given defaults.
func (r *Request) Options(defMethod wcov.Method, defBackend wcov.Backend) ([]wcov.Option, error) {
	method, backend := defMethod, defBackend
	var err error
	if r.Method != "" {
		if method, err = wcov.ParseMethod(r.Method); err != nil {
			return nil, err
		}
	}
	if r.Backend != "" {
		if backend, err = wcov.ParseBackend(r.Backend); err != nil {
			return nil, err
		}
	}

	return []wcov.Option{
		wcov.WithWeights(r.Weights),
		wcov.WithCenter(r.Center),
		wcov.WithCorrelation(r.Correlation),
		wcov.WithMethod(method),
		wcov.WithBackend(backend),
	}, nil
}
