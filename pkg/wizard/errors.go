package wizard

import "errors"

// ValueError ties a rejected value to the field it was meant for.
type ValueError struct {
	FieldID string
	Err     error
}

func (e *ValueError) Error() string {
	return e.Err.Error()
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotReady is returned for transitions attempted before the form loaded.
	ErrNotReady = errors.New("wizard: form is not ready")
	// ErrNoNext is returned when Next is invoked on the last section.
	ErrNoNext = errors.New("wizard: already on the last section")
	// ErrNoPrev is returned when Prev is invoked on the first section.
	ErrNoPrev = errors.New("wizard: already on the first section")
	// ErrNotLastSection is returned when Submit is invoked before the last section.
	ErrNotLastSection = errors.New("wizard: submit is only available on the last section")
	// ErrUnknownField is returned when a value targets a field the form lacks.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrInvalidOption is returned when a selection names an undeclared option.
	ErrInvalidOption = errors.New("wizard: invalid option")
	// ErrInvalidValue is returned when a value's kind does not fit the field
	// type, such as a boolean or a set on a text field.
	ErrInvalidValue = errors.New("wizard: invalid value for field")
)
