package store

import (
	"fmt"
	"net/http"
)

// Error classifies a persistence failure by the HTTP status the API reports
// for it. errors.Is matches on Status and Message, so a sentinel still
// matches after WithCause attaches the driver error.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Status == t.Status && e.Message == t.Message
}

// HTTPCode returns the status the API responds with.
func (e *Error) HTTPCode() int { return e.Status }

// WithCause returns a copy of e wrapping err. The receiver is not modified.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

var (
	// ErrNotFound means the user does not exist.
	ErrNotFound = &Error{Status: http.StatusNotFound, Message: "record not found"}

	// ErrAlreadyExists means a unique column, the user email, is taken.
	ErrAlreadyExists = &Error{Status: http.StatusConflict, Message: "record already exists"}

	// ErrInvalidInput means the store refused the data, such as events owned
	// by someone other than the user being replaced.
	ErrInvalidInput = &Error{Status: http.StatusBadRequest, Message: "invalid input"}
)
