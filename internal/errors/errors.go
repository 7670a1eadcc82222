package errors

import (
	stderrors "errors"
	"fmt"
)

// SetupError is the structured error type for the installer.
// It provides rich context for error handling, logging, and user presentation.
type SetupError struct {
	// Code is the unique error code (e.g., "ERR_202_PATH_UNWRITABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, FS, Runtime, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SetupError with the same code.
func (e *SetupError) Is(target error) bool {
	if t, ok := target.(*SetupError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *SetupError) WithDetail(key, value string) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *SetupError) WithSuggestion(suggestion string) *SetupError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SetupError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SetupError {
	return &SetupError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a SetupError from an existing error.
// The error's message becomes the SetupError message.
func Wrap(code string, err error) *SetupError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SetupError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(code, message string) *SetupError {
	return New(code, message, nil)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SetupError {
	return New(ErrCodeInternal, message, cause)
}

// As finds the first SetupError in err's chain.
func As(err error) (*SetupError, bool) {
	var se *SetupError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if se, ok := As(err); ok {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a SetupError.
// Returns empty string if err carries none.
func GetCode(err error) string {
	if se, ok := As(err); ok {
		return se.Code
	}
	return ""
}

// HasCode reports whether err's chain holds a SetupError with code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}
