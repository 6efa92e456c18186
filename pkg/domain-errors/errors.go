// Package domainerrors carries typed error codes from the ledger core to the
// transport layer. Services return these; handlers translate them to HTTP via
// httputil.WriteError. Callers inspect the code with HasCode instead of
// matching on message text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure. The string value is the stable wire identifier.
type Code string

const (
	// Ledger taxonomy.
	CodeUnauthorized        Code = "unauthorized"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeArithmeticOverflow  Code = "arithmetic_overflow"
	CodeInvalidSignature    Code = "invalid_signature"
	CodeComplianceDenied    Code = "compliance_denied"

	// Transport and infrastructure.
	CodeBadRequest      Code = "bad_request"
	CodeInvalidInput    Code = "invalid_input"
	CodeUnauthenticated Code = "unauthenticated"
	CodeNotFound        Code = "not_found"
	CodeRateLimited     Code = "rate_limited"
	CodeInternal        Code = "internal_error"
)

// Error is a coded domain error. Err optionally holds the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf is New with fmt-style formatting.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// As extracts the outermost *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}
