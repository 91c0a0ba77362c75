package internal

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidCurrency           ErrorCode = "invalid_currency"
	CodeInvalidArgument           ErrorCode = "invalid_argument"
	CodeInvalidDateRange          ErrorCode = "invalid_date_range"
	CodeInvalidDateOrder          ErrorCode = "invalid_date_order"
	CodeUnsupportedHistoricalYear ErrorCode = "unsupported_historical_year"
	CodeBadResponse               ErrorCode = "bad_response"
	CodeFetchFailed               ErrorCode = "fetch_failed"
)

// Error is the single error type surfaced by queries and the rates client.
// Two errors are considered equal by errors.Is when their codes match.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Status is the upstream HTTP status for bad_response.
	Status int   `json:"-"`
	Err    error `json:"-"`
}

var (
	ErrInvalidCurrency           = &Error{Code: CodeInvalidCurrency}
	ErrInvalidArgument           = &Error{Code: CodeInvalidArgument}
	ErrInvalidDateRange          = &Error{Code: CodeInvalidDateRange}
	ErrInvalidDateOrder          = &Error{Code: CodeInvalidDateOrder}
	ErrUnsupportedHistoricalYear = &Error{Code: CodeUnsupportedHistoricalYear}
	ErrBadResponse               = &Error{Code: CodeBadResponse}
	ErrFetchFailed               = &Error{Code: CodeFetchFailed}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) *Error {
	return newError(CodeInvalidArgument, format, args...)
}

func BadResponse(status int, detail string) *Error {
	msg := fmt.Sprintf("bad response: http %d", status)
	if detail != "" {
		msg += ": " + detail
	}
	return &Error{Code: CodeBadResponse, Message: msg, Status: status}
}

// FetchFailed wraps cause into the uniform failure reported for any request
// that did not produce a usable payload.
func FetchFailed(cause error) *Error {
	return &Error{
		Code:    CodeFetchFailed,
		Message: fmt.Sprintf("fetch failed: %v", cause),
		Err:     cause,
	}
}

// IsValidationError reports whether err was raised before any request was made.
func IsValidationError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case CodeInvalidCurrency, CodeInvalidArgument, CodeInvalidDateRange,
		CodeInvalidDateOrder, CodeUnsupportedHistoricalYear:
		return true
	}
	return false
}
