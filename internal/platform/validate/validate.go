// Package validate adapts go-playground/validator to echo and renders
// validation failures as a single readable message keyed by JSON field names.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var std *validator.Validate

func init() {
	std = validator.New()
	std.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := std.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates v and returns a *FieldError for the first failure.
func Struct(v interface{}) error {
	err := std.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return newFieldError(verrs[0])
	}
	return err
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func newFieldError(fe validator.FieldError) *FieldError {
	return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, strings.ReplaceAll(e.Param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "datetime":
		return fmt.Sprintf("%s must match the format %s", e.Field, e.Param)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", e.Field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", e.Field, e.Tag)
	}
}

// EchoValidator satisfies echo.Validator so handlers can call c.Validate.
type EchoValidator struct{}

func (EchoValidator) Validate(i interface{}) error {
	return Struct(i)
}
