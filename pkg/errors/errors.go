// Package errors provides structured error types for the blockflow application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the render pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the failure classes of the render pipeline:
//   - MALFORMED_DIAGRAM: the diagram references blocks that do not exist,
//     or block identities collide
//   - PLACEMENT_CONFLICT: two blocks claim the same grid cell
//   - CANVAS_LIMIT: the resolved canvas exceeds the configured bounds
//   - INVALID_*: option, format, or style validation failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedDiagram, "edge references unknown block %q", id)
//	if errors.Is(err, errors.ErrCodeMalformedDiagram) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Diagram validation errors
	ErrCodeMalformedDiagram  Code = "MALFORMED_DIAGRAM"
	ErrCodePlacementConflict Code = "PLACEMENT_CONFLICT"

	// Resource bound errors
	ErrCodeCanvasLimit Code = "CANVAS_LIMIT"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"

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

// PlacementError reports two blocks assigned to the same grid cell.
// It carries the conflicting cell and both block identities so callers
// can point at the exact input lines that collide.
type PlacementError struct {
	Column int    // Grid column of the contested cell
	Row    int    // Grid row of the contested cell
	First  string // ID of the block that claimed the cell first
	Second string // ID of the block that collided with it
}

// Error implements the error interface.
func (e *PlacementError) Error() string {
	return fmt.Sprintf("blocks %q and %q share grid cell (%d, %d)", e.First, e.Second, e.Column, e.Row)
}

// Code returns the error code for this error type.
func (e *PlacementError) Code() Code {
	return ErrCodePlacementConflict
}
