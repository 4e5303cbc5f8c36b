package errors

import (
	stderrors "errors"
	"fmt"
)

// Session error taxonomy
var (
	// Capture errors
	ErrPermissionDenied = New("audio input permission denied")
	ErrDeviceNotFound   = New("audio input device not found")
	ErrNotRecording     = New("no recording in progress")

	// Transport errors
	ErrNetworkFailure = New("network failure")
	ErrBackendFailure = New("backend failure")

	// Local validation and gating
	ErrValidation = New("validation failed")
	ErrBusy       = New("another operation is in progress")

	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the error message without its cause
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Validation returns a validation error carrying a user-facing message.
// The returned error matches ErrValidation.
func Validation(message string) error {
	return &Error{message: message, cause: ErrValidation}
}

// UserMessage extracts the user-facing message of a validation error, or
// returns fallback for any other error.
func UserMessage(err error, fallback string) string {
	var e *Error
	if stderrors.As(err, &e) && e.cause != nil && Is(e.cause, ErrValidation) {
		return e.message
	}
	return fallback
}
