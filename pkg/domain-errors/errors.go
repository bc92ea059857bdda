// Package domainerrors provides coded errors for the registry's operation
// surface. Services construct these directly for business-rule violations
// and translate store sentinels into them, so callers can branch on the
// code without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Codes are stable identifiers; messages
// are for humans and may change.
type Code string

const (
	CodeNotFound            Code = "not_found"
	CodeAlreadyExists       Code = "already_exists"
	CodeInvalidState        Code = "invalid_state"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeUnauthorized        Code = "unauthorized"
	CodeInvalidArgument     Code = "invalid_argument"
	CodeInternal            Code = "internal"
)

// Error is a failure with a machine-readable code and a human message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a coded error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
