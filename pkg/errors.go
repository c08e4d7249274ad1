package pkg

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection = errors.New("no chart entry at selected index")
	ErrNoOverview  = errors.New("no overview loaded")
)

// TransportError is a network, DNS or HTTP level failure while fetching.
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a malformed or incomplete API payload. Field is the JSON
// path of the offending value, empty when the payload itself is not JSON.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decoding covid overview: %v", e.Err)
	}
	return fmt.Sprintf("decoding covid overview: field %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func ErrorKind(err error) string {
	var transportErr *TransportError
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "internal"
	}
}
