// Package errors provides structured error types for the Timelane application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Validation codes mirror the schedule manager's rejection reasons
// (START_AFTER_END, TIME_RANGE_OVERLAPS, ...) and are surfaced in a fixed
// check order, so a caller always sees the first violated rule. The
// remaining codes cover the outer surfaces (snapshots, stores, the HTTP
// API).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", id)
//	if errors.Is(err, errors.ErrCodeScheduleNotFound) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSnapshotRead, origErr, "failed to load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Schedule validation errors, in the order the manager checks them.
	ErrCodeStartAfterEnd          Code = "START_AFTER_END"
	ErrCodeParentNotFound         Code = "PARENT_NOT_FOUND"
	ErrCodeLevelExceedsParent     Code = "LEVEL_EXCEEDS_PARENT"
	ErrCodeTimeRangeExceedsParent Code = "TIME_RANGE_EXCEEDS_PARENT"
	ErrCodeTimeRangeOverlaps      Code = "TIME_RANGE_OVERLAPS"

	// Lookup and identity errors
	ErrCodeScheduleNotFound Code = "SCHEDULE_NOT_FOUND"
	ErrCodeDuplicateID      Code = "DUPLICATE_ID"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidMode  Code = "INVALID_MODE"

	// Snapshot and store errors
	ErrCodeSnapshotRead  Code = "SNAPSHOT_READ"
	ErrCodeSnapshotWrite Code = "SNAPSHOT_WRITE"
	ErrCodeStore         Code = "STORE_ERROR"

	// Internal errors
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
