// Package errors provides structured error types for efxvdb.
//
// Every fatal condition of a VDB export carries a machine-readable code so the
// CLI, tests and batch callers can tell an unmapped identifier character from a
// malformed design without parsing messages.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (flags, design files, config)
//   - UNMAPPED_CHARACTER, STRUCTURAL_ERROR, UNREGISTERED_WIRE,
//     TOP_MODULE_UNRESOLVED: encoder failures, always fatal to the export
//   - INTERNAL_ERROR: bugs and I/O failures while committing output
//
// [ExitCode] maps each group to the process exit status used by the CLI.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructural, "port %s is neither input nor output", name)
//	if errors.Is(err, errors.ErrCodeStructural) {
//	    // Handle malformed design
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDesign, origErr, "load %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidDesign Code = "INVALID_DESIGN"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Encoder errors. All of them abort the export.
	ErrCodeUnmappedCharacter   Code = "UNMAPPED_CHARACTER"
	ErrCodeStructural          Code = "STRUCTURAL_ERROR"
	ErrCodeUnregisteredWire    Code = "UNREGISTERED_WIRE"
	ErrCodeTopModuleUnresolved Code = "TOP_MODULE_UNRESOLVED"
	ErrCodeIdentifierTooLong   Code = "IDENTIFIER_TOO_LONG"
	ErrCodeDuplicateCipherKey  Code = "DUPLICATE_CIPHER_KEY"

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
	return fmt.Sprintf("%s: %s", e.Code, e.detail())
}

// detail renders the message and its causes without repeating the code of
// a wrapped *Error that carries the same code.
func (e *Error) detail() string {
	if e.Cause == nil {
		return e.Message
	}
	if inner, ok := e.Cause.(*Error); ok && inner.Code == e.Code {
		return e.Message + ": " + inner.detail()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
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

// Is reports whether the outermost *Error in err's chain carries code.
// Wrap with the same code to keep an inner code visible.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in the chain carries code.
func Has(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Exit statuses returned by ExitCode.
const (
	ExitFailure = 1 // uncoded or internal errors
	ExitInput   = 2 // INVALID_*, FILE_NOT_FOUND
	ExitEncode  = 3 // the design loaded but cannot be encoded
)

// ExitCode maps err to a process exit status by its outermost code.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidDesign,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeFileNotFound:
		return ExitInput
	case ErrCodeUnmappedCharacter, ErrCodeStructural, ErrCodeUnregisteredWire,
		ErrCodeTopModuleUnresolved, ErrCodeIdentifierTooLong, ErrCodeDuplicateCipherKey:
		return ExitEncode
	}
	return ExitFailure
}
