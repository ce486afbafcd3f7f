package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag,omitempty"`
	Message string      `json:"message"`
	Value   interface{} `json:"-"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// ValidationErrors collects every field that failed validation
type ValidationErrors []*ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// NewValidator returns a validator that reports fields by their JSON name
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldErrors flattens an error returned by validator or by Profile.Validate
// into field-level details. Unknown errors yield nil.
func FieldErrors(err error) ValidationErrors {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return fromValidator(vErrs)
	}

	var fieldErrs ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}

	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}
	}

	return nil
}

func fromValidator(vErrs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(vErrs))
	for _, fe := range vErrs {
		var message string

		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "max":
			message = fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fe.Field())
		}

		out = append(out, &ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message,
			Value:   fe.Value(),
		})
	}
	return out
}
