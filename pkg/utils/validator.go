package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field_errors keys match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors turns validator errors into a field -> message map.
func GetValidationErrors(err error) map[string]string {
	result := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		result["_schema"] = err.Error()
		return result
	}

	for _, fe := range validationErrors {
		result[fe.Field()] = validationMessage(fe)
	}
	return result
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing data for required field."
	case "email":
		return "Not a valid email address."
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
	case "required_with", "required_with_all":
		return "Required for password change."
	case "eqfield":
		return "New passwords do not match"
	}
	return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
}
