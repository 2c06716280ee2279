package nager

import (
	"errors"
	"fmt"
)

// Sentinel errors for Nager.Date API operations.
var (
	ErrNotFound         = errors.New("nager: not found")
	ErrBadRequest       = errors.New("nager: bad request")
	ErrRateLimited      = errors.New("nager: rate limited by server")
	ErrServer           = errors.New("nager: server error")
	ErrUnexpectedStatus = errors.New("nager: unexpected status")
	ErrMalformed        = errors.New("nager: malformed response")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "availableCountries", "publicHolidays", "countryInfo"
	Country string // If applicable
	Err     error
}

func (e *Error) Error() string {
	if e.Country != "" {
		return fmt.Sprintf("nager %s [%s]: %v", e.Op, e.Country, e.Err)
	}
	return fmt.Sprintf("nager %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, country string, err error) error {
	return &Error{Op: op, Country: country, Err: err}
}
