package errors

import (
	"fmt"
	"sort"
)

// ErrorType is the category of a failure. Callers branch on it, the HTTP
// layer maps it to a status and the client maps statuses back to it.
type ErrorType string

const (
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// String returns the type name, or "unknown" for the zero value.
func (et ErrorType) String() string {
	if et == "" {
		return "unknown"
	}
	return string(et)
}

// AppError is a categorized failure carrying optional key/value fields
// for structured logs.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Fields  map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError with the same type and code, so
// errors.Is(err, NewNotFoundError("task", "")) works for any id.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType reports whether e is of errorType.
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// With sets a log field and returns e.
func (e *AppError) With(key string, value any) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// Field returns the log field stored under key.
func (e *AppError) Field(key string) (any, bool) {
	value, ok := e.Fields[key]
	return value, ok
}

// KeyVals flattens the code and fields into logger key/value pairs,
// fields sorted by key.
func (e *AppError) KeyVals() []any {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, 2+2*len(keys))
	out = append(out, "code", e.Code)
	for _, k := range keys {
		out = append(out, k, e.Fields[k])
	}
	return out
}
