package client

import "errors"

var (
	// ErrRollNumberRequired is returned for a blank roll number.
	ErrRollNumberRequired = errors.New("client: roll number is required")
	// ErrBaseURLRequired is returned when the HTTP client has no API base.
	ErrBaseURLRequired = errors.New("client: base url is required")
	// ErrUnexpectedStatus wraps non-2xx responses.
	ErrUnexpectedStatus = errors.New("client: unexpected status")
	// ErrSourceRequired is returned when a file fetcher has no location.
	ErrSourceRequired = errors.New("client: schema source is required")
)
