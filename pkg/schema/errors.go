package schema

import "errors"

var (
	// ErrUnknownFieldType reports a field whose type is outside the closed set.
	ErrUnknownFieldType = errors.New("schema: unknown field type")
	// ErrNoSections reports a form without any section.
	ErrNoSections = errors.New("schema: form has no sections")
	// ErrDuplicateFieldID reports a field id reused anywhere in the form.
	ErrDuplicateFieldID = errors.New("schema: duplicate field id")
	// ErrInvalidField groups the remaining structural field violations.
	ErrInvalidField = errors.New("schema: invalid field")
	// ErrEmptyDocument is returned when decoding an empty payload.
	ErrEmptyDocument = errors.New("schema: document is empty")
)
