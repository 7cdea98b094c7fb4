// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strings"

	"greenroute/internal/domain/address"
	"greenroute/internal/errors"

	"github.com/go-playground/validator/v10"
)

// TagPostalAddress accepts strings that look like a complete postal address
const TagPostalAddress = "postal_address"

// Validator wraps the go-playground validator for request DTOs
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the project's custom tags registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// Registration only fails on an empty tag or nil func
	_ = v.RegisterValidation(TagPostalAddress, func(fl validator.FieldLevel) bool {
		return address.IsValid(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate implements echo.Validator
func (val *Validator) Validate(i any) error {
	if err := val.v.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Var validates a single value against a tag
func (val *Validator) Var(field any, tag string) error {
	if err := val.v.Var(field, tag); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
