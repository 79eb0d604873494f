package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// SubmitPolicy selects which sections Submit validates.
type SubmitPolicy int

const (
	// SubmitValidateCurrent checks only the displayed (last) section, the same
	// checks a native form submit applies to the visible controls.
	SubmitValidateCurrent SubmitPolicy = iota
	// SubmitValidateAll re-validates every section and moves the index to the
	// first one that fails.
	SubmitValidateAll
)

// ValidateSection validates exactly the field ids of section index and records
// the outcome: failing ids get their message, passing ids are cleared. It
// reports whether every field passed.
func (s *State) ValidateSection(index int) bool {
	if !s.Ready() || index < 0 || index >= len(s.Form.Sections) {
		return false
	}
	section := s.Form.Sections[index]
	errs := validation.IDs(s.Form, section.FieldIDs(), s.Values)

	for _, id := range section.FieldIDs() {
		if msg, failed := errs[id]; failed {
			if s.Errors == nil {
				s.Errors = make(map[string]string)
			}
			s.Errors[id] = msg
			continue
		}
		delete(s.Errors, id)
	}
	if len(s.Errors) == 0 {
		s.Errors = nil
	}
	return len(errs) == 0
}

// Next validates the current section and advances by one when it passes. When
// it fails the index stays put and the section's errors become visible.
func (s *State) Next() (bool, error) {
	if !s.Ready() {
		return false, ErrNotReady
	}
	if !s.CanNext() {
		return false, ErrNoNext
	}
	if !s.ValidateSection(s.Index) {
		return false, nil
	}
	s.Index++
	return true, nil
}

// Prev steps back one section without validating and without touching values.
func (s *State) Prev() error {
	if !s.Ready() {
		return ErrNotReady
	}
	if !s.CanPrev() {
		return ErrNoPrev
	}
	s.Index--
	return nil
}

// Submit returns a copy of every accumulated value once the policy's checks
// pass. It is only available on the last section; ok is false when validation
// failed and errors were recorded instead.
func (s *State) Submit(policy SubmitPolicy) (values schema.FormValues, ok bool, err error) {
	if !s.Ready() {
		return nil, false, ErrNotReady
	}
	if !s.CanSubmit() {
		return nil, false, ErrNotLastSection
	}

	switch policy {
	case SubmitValidateAll:
		firstInvalid := -1
		for index := range s.Form.Sections {
			if !s.ValidateSection(index) && firstInvalid < 0 {
				firstInvalid = index
			}
		}
		if firstInvalid >= 0 {
			s.Index = firstInvalid
			return nil, false, nil
		}
	default:
		if !s.ValidateSection(s.Index) {
			return nil, false, nil
		}
	}

	return s.Values.Clone(), true, nil
}

// MarkSubmitted records that the submit sink accepted the values.
func (s *State) MarkSubmitted() {
	s.Status = StatusSubmitted
	s.Errors = nil
}
