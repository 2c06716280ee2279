// Package errors provides coded domain errors for the calsync server.
//
// Services return typed errors; the API layer maps the code to an HTTP status:
//
//	if errors.Is(err, domainerrors.ErrUserNotFound) {
//	    // 404
//	}
//
//	var domainErr *domainerrors.Error
//	if errors.As(err, &domainErr) {
//	    status := domainErr.HTTPStatus()
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound            Code = "NOT_FOUND"
	CodeUserNotFound        Code = "USER_NOT_FOUND"
	CodeAlreadyExists       Code = "ALREADY_EXISTS"
	CodeValidation          Code = "VALIDATION"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeStoreFailure        Code = "STORE_FAILURE"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Sentinel errors for use with errors.Is.
var (
	ErrUserNotFound        = &Error{Code: CodeUserNotFound, Message: "user not found"}
	ErrAlreadyExists       = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUpstreamUnavailable = &Error{Code: CodeUpstreamUnavailable, Message: "upstream unavailable"}
	ErrStoreFailure        = &Error{Code: CodeStoreFailure, Message: "store failure"}
)

// UserNotFound creates the error returned when a user id has no matching user.
func UserNotFound(userID int64) *Error {
	return &Error{Code: CodeUserNotFound, Message: fmt.Sprintf("user %d not found", userID)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// UpstreamUnavailable wraps a failed call to an external provider.
func UpstreamUnavailable(err error, msg string) *Error {
	return &Error{Code: CodeUpstreamUnavailable, Message: msg, cause: err}
}

// StoreFailure wraps a failed persistence operation.
func StoreFailure(err error, msg string) *Error {
	return &Error{Code: CodeStoreFailure, Message: msg, cause: err}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
