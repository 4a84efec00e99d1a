// Package errors provides structured error types for scalekit.
//
// Errors carry a machine-readable [Code] so callers (the CLI, a figure
// loader, an embedding widget layer) can branch on the category without
// string matching. The scale engine itself never returns errors from domain
// recomputation; codes from this package are used there only to tag the
// contained failures reported through observability hooks.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration or input validation failures
//   - MISMATCHED_*: Inconsistent but recoverable input (reported, not returned)
//   - NOT_FOUND: Unknown scale, mark or view name
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColor, "invalid color: %q", c)
//	if errors.Is(err, errors.ErrCodeInvalidColor) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "failed to decode %s", path)
//
//	// Add context without changing the code
//	err := errors.Annotate(err, "scale %q", name)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidKind   Code = "INVALID_KIND"
	ErrCodeInvalidDomain Code = "INVALID_DOMAIN"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidScheme Code = "INVALID_SCHEME"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Recoverable input inconsistencies
	ErrCodeMismatchedLength Code = "MISMATCHED_LENGTH"
	ErrCodeMismatchedKind   Code = "MISMATCHED_KIND"
	ErrCodeStaleContributor Code = "STALE_CONTRIBUTOR"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Annotate wraps err with context, keeping err's code. A plain error is
// tagged ErrCodeInternal.
func Annotate(err error, format string, args ...any) *Error {
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Wrap(code, err, format, args...)
}

// UserMessage returns a user-friendly message for the error: the messages
// along the chain joined by ": ", without code prefixes. A plain error ends
// the chain with its own text.
func UserMessage(err error) string {
	var parts []string
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			parts = append(parts, err.Error())
			break
		}
		if e.Message != "" {
			parts = append(parts, e.Message)
		}
		err = e.Cause
	}
	return strings.Join(parts, ": ")
}
