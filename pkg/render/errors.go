package render

import "errors"

var (
	// ErrUnsupportedField is returned when a renderer meets a field type outside
	// the closed set. Forms are validated at load time, so reaching it means a
	// form bypassed decoding.
	ErrUnsupportedField = errors.New("render: unsupported field type")
	// ErrNoSection is returned when a ready view has no section to display.
	ErrNoSection = errors.New("render: no section to display")
)
