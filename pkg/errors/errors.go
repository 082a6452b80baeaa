// Package errors provides structured error types for the CyGo client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Preservation of server-provided messages through wrapping
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CONNECTION_*: the CyREST service could not be reached or probed
//   - INVALID_*/MISSING_*: caller-correctable input failures
//   - SERVICE_*: failures reported by the running Cytoscape instance
//   - PROTOCOL_*: responses that violate the expected wire shape
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingParameter, "operation %q requires %q", op, name)
//	if errors.Is(err, errors.ErrCodeMissingParameter) {
//	    // Handle locally-detectable failure
//	}
//
//	// Wrap transport errors with context
//	err := errors.Wrap(errors.ErrCodeServiceUnavailable, origErr, "GET %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Connection errors (service unreachable or never probed)
	ErrCodeConnection Code = "CONNECTION_ERROR"

	// Transport failures mid-call (timeout, connection reset)
	ErrCodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// Caller-correctable failures
	ErrCodeInvalidRequest   Code = "INVALID_REQUEST"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeMissingParameter Code = "MISSING_PARAMETER"
	ErrCodeUnknownOperation Code = "UNKNOWN_OPERATION"
	ErrCodeTypeMismatch     Code = "TYPE_MISMATCH"
	ErrCodeNotFound         Code = "NOT_FOUND"

	// Server-side faults (HTTP 5xx)
	ErrCodeService Code = "SERVICE_ERROR"

	// Response shape violations
	ErrCodeProtocol Code = "PROTOCOL_ERROR"

	// Unexpected internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ServerMessage digs through the error chain for the message Cytoscape
// attached to a failed request. Falls back to the outermost message when
// no cause is present.
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	return UserMessage(err)
}
