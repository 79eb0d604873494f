package server

import "errors"

var (
	// ErrNoControllerFactory indicates the server was built without a way to
	// create per-session controllers.
	ErrNoControllerFactory = errors.New("server: controller factory is required")
	// ErrNoRenderer indicates the server was built without an HTML renderer.
	ErrNoRenderer = errors.New("server: renderer is required")
)

// Messages shown to the user on the login page.
const (
	MessageLoginFailed     = "Login failed. Please try again."
	MessageRollRequired    = "Roll number is required."
	MessageSessionExpired  = "Your session has expired. Please log in again."
	MessageStaleSubmission = "The form changed since this page was loaded. Please review the current section."
)
