package errors

import (
	"context"
	"errors"
	"fmt"
)

// NewInvalidInputError rejects a single field.
func NewInvalidInputError(field string, value any, reason string) *AppError {
	err := &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
	}
	return err.With("field", field).With("value", value)
}

// NewValidationError wraps a collection of field failures as invalid input.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
	}
}

// NewNotFoundError reports a missing record. The message doubles as the
// user-facing text, e.g. "task not found: 42".
func NewNotFoundError(resource string, identifier string) *AppError {
	err := &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
	}
	return err.With("resource", resource).With("id", identifier)
}

// NewStorageError wraps a backend failure.
func NewStorageError(operation string, cause error) *AppError {
	err := &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
	}
	return err.With("operation", operation)
}

// NewTimeoutError reports an operation that ran out of time. timeout may
// be nil when the deadline came from the caller.
func NewTimeoutError(operation string, timeout any) *AppError {
	err := &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
	}
	err.With("operation", operation)
	if timeout != nil {
		err.With("timeout", timeout)
	}
	return err
}

// WrapError wraps err under errorType with the type name as its code.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
	}
}

// FromContextError turns a context cancellation into a timeout error.
// Any other error is returned unchanged.
func FromContextError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		timeoutErr := NewTimeoutError(operation, nil)
		timeoutErr.Cause = err
		return timeoutErr
	}
	return err
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsInvalidInput reports whether err is an invalid input error
func IsInvalidInput(err error) bool {
	return IsErrorType(err, ErrorTypeInvalidInput)
}

// userMessager is implemented by causes that carry their own display text.
type userMessager interface {
	GetUserFriendlyMessage() string
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidInput:
			var um userMessager
			if errors.As(appErr.Cause, &um) {
				return um.GetUserFriendlyMessage()
			}
			if appErr.Cause != nil {
				return appErr.Cause.Error()
			}
			return appErr.Message
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeStorage:
			return "A storage error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// LogValues returns logger key/value pairs describing err.
func LogValues(err error) []any {
	out := []any{"error", err}
	if appErr, ok := AsAppError(err); ok {
		out = append(out, appErr.KeyVals()...)
	}
	return out
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidInput, ErrorTypeNotFound:
			return false // These are user errors, not system errors
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
