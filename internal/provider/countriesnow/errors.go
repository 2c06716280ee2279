package countriesnow

import (
	"errors"
	"fmt"
)

// Sentinel errors for CountriesNow API operations.
var (
	ErrNotFound         = errors.New("countriesnow: not found")
	ErrBadRequest       = errors.New("countriesnow: bad request")
	ErrRateLimited      = errors.New("countriesnow: rate limited by server")
	ErrServer           = errors.New("countriesnow: server error")
	ErrUnexpectedStatus = errors.New("countriesnow: unexpected status")
	ErrMalformed        = errors.New("countriesnow: malformed response")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "flagURL", "populationHistory"
	Country string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("countriesnow %s [%s]: %v", e.Op, e.Country, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, country string, err error) error {
	return &Error{Op: op, Country: country, Err: err}
}
