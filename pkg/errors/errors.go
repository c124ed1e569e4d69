// Package errors provides structured error types for the netplot application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names one failure class of the analysis pipeline:
//   - SCHEMA_ERROR, DATA_TYPE_ERROR: edge-list input problems
//   - CONVERGENCE_ERROR, COMPUTATION_ERROR: centrality computation failures
//   - DEGENERATE_RANGE: visual attribute scaling with zero input range
//   - UNKNOWN_LAYOUT: unrecognized layout selector
//   - IO_ERROR: unreadable input or unwritable output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "missing required column %q", col)
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // Handle schema error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeSchema       Code = "SCHEMA_ERROR"
	ErrCodeDataType     Code = "DATA_TYPE_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Computation errors
	ErrCodeConvergence Code = "CONVERGENCE_ERROR"
	ErrCodeComputation Code = "COMPUTATION_ERROR"

	// Rendering errors
	ErrCodeDegenerateRange Code = "DEGENERATE_RANGE"
	ErrCodeUnknownLayout   Code = "UNKNOWN_LAYOUT"

	// Environment errors
	ErrCodeIO       Code = "IO_ERROR"
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
