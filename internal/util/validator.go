package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

func msgForTag(fe validator.FieldError, customField map[string]string) string {
	// convert to custom field if exist
	field := fe.Field()
	if name, ok := customField[field]; ok {
		field = name
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "required_without":
		other := fe.Param()
		if name, ok := customField[other]; ok {
			other = name
		}
		return fmt.Sprintf("%v is required when %v is not set", field, other)
	case "gte":
		return fmt.Sprintf("%v must be greater than or equal to %v", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%v must be less than or equal to %v", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%v must be one of: %v", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace charaters", field)
	case "file":
		return fmt.Sprintf("%v must be an existing file", field)
	}

	return fe.Error() // default error
}

/*
Extract error from validator and return the first error as a string
Usage: GenerateErrorMessagesAsString(err, map[string]string{"TemplatePath": "--template"})
Example output: "--template is required"
*/
func GenerateErrorMessagesAsString(err error, customField map[string]string) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		if len(ve) > 0 {
			return msgForTag(ve[0], customField)
		}
	}

	return err.Error()
}

// check if string is empty, after trimming spaces
// Usage: `validate:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return strings.TrimSpace(field.String()) != ""
}

func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("strNotEmpty", StrNotEmpty)
}
