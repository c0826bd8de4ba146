package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies a rejected field.
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
)

// FieldError is one rejected field. Message is shown to users as is.
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", fe.Field, fe.Message)
}

// ValidationError collects every rejected field of one request.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewValidationError returns an empty collection.
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

// HasErrors reports whether any field was rejected.
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Merge appends the field errors carried by err. Other errors, including
// nil, are ignored.
func (ve *ValidationError) Merge(err error) {
	var other *ValidationError
	if errors.As(err, &other) {
		ve.Errors = append(ve.Errors, other.Errors...)
	}
}

// AddError records a rejected field.
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

// AddRequiredError records a missing or blank field.
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, field+" is required", nil)
}

// AddInvalidLengthError records a field outside [min, max] characters.
// A zero bound is open.
func (ve *ValidationError) AddInvalidLengthError(field string, value any, min, max int) {
	ve.AddError(field, ErrorTypeInvalidLength, lengthMessage(field, min, max), value)
}

func lengthMessage(field string, min, max int) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		return fmt.Sprintf("%s must be at least %d characters long", field, min)
	case max > 0:
		return fmt.Sprintf("%s must be at most %d characters long", field, max)
	}
	return field + " has invalid length"
}

// AddInvalidValueError records a value outside the allowed set.
func (ve *ValidationError) AddInvalidValueError(field string, value any, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, field+" "+reason, value)
}

// GetFieldErrors returns the errors recorded for field.
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// GetUserFriendlyMessage joins the field messages for display.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	messages := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}
