package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrLoadFailed is returned by Run when the session never became ready.
	ErrLoadFailed = errors.New("tui: form failed to load")
)
