// Package domerrors provides coded domain errors shared across modules.
// Services attach a code when creating or wrapping errors; transport layers
// map codes to HTTP statuses without inspecting error strings.
package domerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for boundary handling.
type Code string

const (
	// CodeValidation: malformed or out-of-range input. Never defaulted away.
	CodeValidation Code = "validation"
	// CodeBadRequest: structurally invalid request (missing body, bad JSON).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound: a referenced entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeUnavailable: an external collaborator cannot be reached.
	CodeUnavailable Code = "unavailable"
	// CodeInternal: anything unexpected.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error code to an HTTP status code.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
