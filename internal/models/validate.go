package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report failures against JSON field names so error locations address
	// the wire payload, not Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks a value against its declared constraints. On failure the
// returned error is a validator.ValidationErrors, which the error mapper
// itemizes per field at 422.
func Validate(v any) error {
	return validate.Struct(v)
}
