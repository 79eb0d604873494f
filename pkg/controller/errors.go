package controller

import "errors"

// FetchErrorMessage is the user-visible text shown when the schema fetch fails.
const FetchErrorMessage = "Failed to load form. Please try again."

var (
	// ErrFetchFailed wraps the transport or decode cause of a failed fetch.
	ErrFetchFailed = errors.New("controller: fetch form failed")
	// ErrNoFetcher is returned by Load when the controller has no fetcher.
	ErrNoFetcher = errors.New("controller: fetcher not configured")
	// ErrEmptyRollNumber is returned by Load for a blank identity.
	ErrEmptyRollNumber = errors.New("controller: roll number is required")
)
