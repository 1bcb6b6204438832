package services

import (
	"errors"
	"reflect"
	"strings"

	"agrisolve/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Input rules live in `binding` tags so gin enforces them while binding a request
// body and services enforce the same rules on normalized input.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	UseJSONNames(v)
	return v
}

// UseJSONNames makes v report fields by their json name.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateInput(in any) error {
	return AsValidationError(validate.Struct(in))
}

// AsValidationError turns validator failures into a ValidationError for the first
// failing field. Any other error is returned unchanged.
func AsValidationError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	fe := fields[0]
	return domain.ValidationError{Field: fe.Field(), Msg: violationMessage(fe), Err: err}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "at most " + fe.Param() + " allowed"
		}
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
