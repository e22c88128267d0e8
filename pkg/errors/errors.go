// Package errors provides structured error types for schemaforge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine packages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Typed caller-misuse failures that carry the offending value and the
//     valid alternatives
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Referenced terminals, ports or components that do not exist
//   - EXHAUSTED: Finite pin or tag sources that ran dry
//   - INTERNAL_*: Unexpected internal errors
//
// Resolution shortfalls (PLC overflow, unmapped types) and unconnected traces
// are not errors; see the plc and netlist packages.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid terminal id: %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidProject, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidTag      Code = "INVALID_TAG"
	ErrCodeInvalidTerminal Code = "INVALID_TERMINAL"
	ErrCodeInvalidProject  Code = "INVALID_PROJECT"
	ErrCodeInvalidDrawing  Code = "INVALID_DRAWING"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodePortNotFound      Code = "PORT_NOT_FOUND"
	ErrCodeComponentNotFound Code = "COMPONENT_NOT_FOUND"
	ErrCodeTemplateNotFound  Code = "TEMPLATE_NOT_FOUND"
	ErrCodeModuleNotFound    Code = "MODULE_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Finite sources
	ErrCodeExhausted Code = "EXHAUSTED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// coder is implemented by the typed misuse errors so Is and GetCode work on
// them without unwrapping into an *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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
