// Package decode turns successful response bodies into wire records.
//
// Wire records mark mandatory fields as pointers tagged validate:"required",
// so a field the exchange omitted is told apart from a zero value.
package decode

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"binanceapi/pkg/core"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Into decodes body into a new T and validates it. target names the record
// in the returned *core.DecodeError.
func Into[T any](body []byte, target string) (*T, error) {
	out := new(T)
	if err := sonic.Unmarshal(body, out); err != nil {
		return nil, &core.DecodeError{Target: target, Err: err}
	}
	if err := validate.Struct(out); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return out, nil
		}
		return nil, &core.DecodeError{Target: target, Err: describe(err)}
	}
	return out, nil
}

// describe lists the fields that failed validation by their JSON path.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			errs = append(errs, fmt.Errorf("missing field %s", fe.Namespace()))
			continue
		}
		errs = append(errs, fmt.Errorf("field %s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.Join(errs...)
}
