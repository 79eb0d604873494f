package wizard

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
	StatusFailed    Status = "failed"
	StatusSubmitted Status = "submitted"
)

// State is the single serialisable record behind a form session: the fetched
// form, the accumulated values, visible field errors and the navigation index.
type State struct {
	RollNumber string            `json:"rollNumber,omitempty"`
	Status     Status            `json:"status"`
	Form       schema.Form       `json:"form"`
	Values     schema.FormValues `json:"values"`
	Errors     map[string]string `json:"errors,omitempty"`
	Index      int               `json:"currentSectionIndex"`
	Message    string            `json:"error,omitempty"`
}

// NewState returns an idle state with empty values.
func NewState() State {
	return State{
		Status: StatusIdle,
		Values: schema.FormValues{},
	}
}

// Begin resets the record for a fetch on behalf of rollNumber. Values from a
// previous identity are discarded.
func (s *State) Begin(rollNumber string) {
	*s = NewState()
	s.RollNumber = rollNumber
	s.Status = StatusLoading
}

// Loaded stores a fetched form and positions the navigator on section 0.
func (s *State) Loaded(form schema.Form) {
	s.Form = form
	s.Status = StatusReady
	s.Index = 0
	s.Errors = nil
	s.Message = ""
	if s.Values == nil {
		s.Values = schema.FormValues{}
	}
}

// Failed moves the record into the terminal error state for this session.
func (s *State) Failed(message string) {
	s.Form = schema.Form{}
	s.Status = StatusFailed
	s.Message = message
	s.Index = 0
	s.Errors = nil
}

// Reset discards everything, as on logout.
func (s *State) Reset() {
	*s = NewState()
}

// Ready reports whether navigation and value updates are allowed.
func (s State) Ready() bool {
	return s.Status == StatusReady && len(s.Form.Sections) > 0
}

// CurrentSection returns the section under the navigation index.
func (s State) CurrentSection() (schema.Section, bool) {
	if !s.Ready() || s.Index < 0 || s.Index >= len(s.Form.Sections) {
		return schema.Section{}, false
	}
	return s.Form.Sections[s.Index], true
}

// IsLast reports whether the index sits on the final section.
func (s State) IsLast() bool {
	return s.Ready() && s.Index == len(s.Form.Sections)-1
}

// CanNext reports whether the Next transition is offered.
func (s State) CanNext() bool {
	return s.Ready() && s.Index < len(s.Form.Sections)-1
}

// CanPrev reports whether the Prev transition is offered.
func (s State) CanPrev() bool {
	return s.Ready() && s.Index > 0
}

// CanSubmit reports whether the Submit transition is offered.
func (s State) CanSubmit() bool {
	return s.IsLast()
}

// ErrorFor returns the visible error message for a field id.
func (s State) ErrorFor(id string) string {
	return s.Errors[id]
}

// SetValue records value for field id in place. Selection values must name
// declared options; a blank text value is accepted as "nothing selected".
func (s *State) SetValue(id string, value schema.Value) error {
	if !s.Ready() {
		return ErrNotReady
	}
	field, ok := s.Form.Field(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	value, err := valueForField(field, value)
	if err != nil {
		return &ValueError{FieldID: id, Err: err}
	}
	if field.Type.Selection() {
		for _, selected := range value.Strings() {
			if !field.HasOption(selected) {
				return &ValueError{FieldID: id, Err: fmt.Errorf("%w: %q for field %q", ErrInvalidOption, selected, id)}
			}
		}
	}
	if s.Values == nil {
		s.Values = schema.FormValues{}
	}
	s.Values[id] = value
	return nil
}

// valueForField checks the value's kind against the field type. Checkbox
// groups hold sets, so a text value becomes a one element set; every other
// type holds text. No field type holds a boolean.
func valueForField(field schema.Field, value schema.Value) (schema.Value, error) {
	switch value.Kind() {
	case schema.ValueNone:
		return value, nil
	case schema.ValueBool:
		return schema.Value{}, fmt.Errorf("%w: boolean for %s field %q", ErrInvalidValue, field.Type, field.ID)
	case schema.ValueSet:
		if !field.Type.MultiValue() {
			return schema.Value{}, fmt.Errorf("%w: list for %s field %q", ErrInvalidValue, field.Type, field.ID)
		}
	case schema.ValueText:
		if field.Type.MultiValue() {
			return schema.Set(value.Strings()...), nil
		}
	}
	return value, nil
}

// Clone returns a deep copy suitable for handing to renderers.
func (s State) Clone() State {
	out := s
	out.Values = s.Values.Clone()
	out.Errors = maps.Clone(s.Errors)
	return out
}
