package errors

import (
	"errors"
	"fmt"
)

// Error code constants
const (
	CodeConfigMissing   = "CONFIG_MISSING"
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeBasketNotFound  = "BASKET_NOT_FOUND"
	CodeRemoteError     = "REMOTE_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
)

// maxBodyInMessage bounds how much of a remote body ends up in an error message.
const maxBodyInMessage = 512

// Error represents a pantry-mcp error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	wrapped error
	Code    string
	Message string
	// HTTPStatus is the remote status code for remote-service errors, 0 otherwise.
	HTTPStatus int
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a new error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new error that wraps an underlying error.
func Wrap(code string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		wrapped: err,
	}
}

// As is a re-export of the stdlib errors.As so callers need a single import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Code extracts the error code from an error.
// Returns an empty string if the error is not a pantry-mcp error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ""
}

// Is checks if an error has a specific error code.
func Is(err error, code string) bool {
	return Code(err) == code
}

// IsConfig reports whether err was raised before any network call.
func IsConfig(err error) bool {
	switch Code(err) {
	case CodeConfigMissing, CodeInvalidParams:
		return true
	}
	return false
}

// IsRemote reports whether err came from the exchange with Pantry.
func IsRemote(err error) bool {
	switch Code(err) {
	case CodeBasketNotFound, CodeRemoteError, CodeInvalidResponse:
		return true
	}
	return false
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.HTTPStatus
	}
	return 0
}

// Convenience constructors for each error code

// ConfigMissing creates a CONFIG_MISSING error naming the unresolved identifiers.
func ConfigMissing(what string) *Error {
	return New(CodeConfigMissing, fmt.Sprintf("%s required (either as input or via --pantry-id/--basket-name or PANTRY_ID/BASKET_NAME)", what))
}

// InvalidParams creates an INVALID_PARAMS error.
func InvalidParams(message string) *Error {
	return New(CodeInvalidParams, message)
}

// BasketNotFound creates a BASKET_NOT_FOUND error.
func BasketNotFound(basket string) *Error {
	e := New(CodeBasketNotFound, fmt.Sprintf("basket %q not found", basket))
	e.HTTPStatus = 404
	return e
}

// RemoteStatus creates a REMOTE_ERROR error for a non-2xx response.
func RemoteStatus(status int, body string) *Error {
	if len(body) > maxBodyInMessage {
		body = body[:maxBodyInMessage] + "..."
	}
	msg := fmt.Sprintf("pantry responded with status %d", status)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	e := New(CodeRemoteError, msg)
	e.HTTPStatus = status
	return e
}

// RemoteUnavailable creates a REMOTE_ERROR error wrapping a network failure.
func RemoteUnavailable(err error) *Error {
	return Wrap(CodeRemoteError, "request to pantry failed", err)
}

// InvalidResponse creates an INVALID_RESPONSE error wrapping the decode failure.
func InvalidResponse(err error) *Error {
	return Wrap(CodeInvalidResponse, "pantry returned a malformed body", err)
}
