package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindInternal        ErrorKind = "internal"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
	// Detail carries the operation failure text for clients that only read
	// this field.
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewPayloadTooLargeError creates an error for uploads over the size limit
func NewPayloadTooLargeError(limitMB int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("Upload exceeds %d MB", limitMB),
	}
}

// NewOperationError reports a failed backend operation, e.g.
// "Transcription failed: <cause>".
func NewOperationError(operation string, err error) *APIError {
	message := fmt.Sprintf("%s failed: %v", operation, err)
	return &APIError{
		Kind:    KindInternal,
		Message: message,
		Detail:  message,
	}
}
