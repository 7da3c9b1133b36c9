package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates a parameter outside its vocabulary or range
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested entry was not found
	CodeNotFound Code = "not_found"

	// CodeValidation indicates structurally valid input that breaks a cross-field rule
	CodeValidation Code = "validation"

	// CodeIncompatibleElements indicates two elements too far apart to combine
	CodeIncompatibleElements Code = "incompatible_elements"

	// CodeDataIntegrity indicates the loaded dataset is missing or out of band
	CodeDataIntegrity Code = "data_integrity"

	// CodeIO indicates a failure reading or writing external data
	CodeIO Code = "io"
)

// Meta keys shared by validation errors
const (
	MetaField       = "field"
	MetaValue       = "value"
	MetaSuggestions = "suggestions"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithSuggestions attaches "did you mean" candidates. Empty lists are skipped.
func (e *Error) WithSuggestions(suggestions []string) *Error {
	if len(suggestions) == 0 {
		return e
	}
	return e.WithMeta(MetaSuggestions, suggestions)
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

func wrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidParameter creates an invalid argument error tagged with the offending field and value
func InvalidParameter(field string, value any, format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...).
		WithMeta(MetaField, field).
		WithMeta(MetaValue, value)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// IncompatibleElementsf creates a formatted incompatible elements error
func IncompatibleElementsf(format string, args ...any) *Error {
	return Newf(CodeIncompatibleElements, format, args...)
}

// DataIntegrityf creates a formatted data integrity error
func DataIntegrityf(format string, args ...any) *Error {
	return Newf(CodeDataIntegrity, format, args...)
}

// IOf wraps a read or write failure with a formatted message, keeping the cause
func IOf(err error, format string, args ...any) *Error {
	return wrapWithCode(err, CodeIO, fmt.Sprintf(format, args...))
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsIncompatibleElements checks if the error is an incompatible elements error
func IsIncompatibleElements(err error) bool {
	return Is(err, CodeIncompatibleElements)
}

// IsDataIntegrity checks if the error is a data integrity error
func IsDataIntegrity(err error) bool {
	return Is(err, CodeDataIntegrity)
}

// IsIO checks if the error is an IO error
func IsIO(err error) bool {
	return Is(err, CodeIO)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

func meta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// GetField returns the field an invalid argument error was raised for
func GetField(err error) string {
	field, _ := meta(err)[MetaField].(string)
	return field
}

// GetSuggestions returns the "did you mean" candidates attached to err
func GetSuggestions(err error) []string {
	suggestions, _ := meta(err)[MetaSuggestions].([]string)
	return suggestions
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
