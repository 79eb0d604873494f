package schema

import (
	"fmt"
	"strings"
)

// Problem locates one structural violation inside a form.
type Problem struct {
	Section int
	Field   int
	FieldID string
	Err     error
}

func (p Problem) Error() string {
	return p.Err.Error()
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Path renders the location as sections[i].fields[j], or "" for form-level
// problems.
func (p Problem) Path() string {
	if p.Section < 0 {
		return ""
	}
	if p.Field < 0 {
		return fmt.Sprintf("sections[%d]", p.Section)
	}
	return fmt.Sprintf("sections[%d].fields[%d]", p.Section, p.Field)
}

// Validate checks the structural invariants every consumer relies on and
// returns the first violation:
//   - at least one section, each field with a non-empty id unique form-wide
//   - type within the closed set
//   - options present exactly for selection types, with unique values
//   - length bounds only on text-like types, non-negative, min <= max
func (f Form) Validate() error {
	if problems := f.Check(); len(problems) > 0 {
		return problems[0]
	}
	return nil
}

// Check reports every structural violation in declaration order.
func (f Form) Check() []Problem {
	if len(f.Sections) == 0 {
		return []Problem{{Section: -1, Field: -1, Err: ErrNoSections}}
	}

	var problems []Problem
	seen := make(map[string]int)
	for sectionIndex, section := range f.Sections {
		for fieldIndex, field := range section.Fields {
			report := func(err error) {
				problems = append(problems, Problem{
					Section: sectionIndex,
					Field:   fieldIndex,
					FieldID: field.ID,
					Err:     err,
				})
			}

			if strings.TrimSpace(field.ID) == "" {
				report(fmt.Errorf("%w: field without fieldId", ErrInvalidField))
				continue
			}
			if previous, ok := seen[field.ID]; ok {
				report(fmt.Errorf("%w: %q in sections %d and %d", ErrDuplicateFieldID, field.ID, previous, sectionIndex))
			} else {
				seen[field.ID] = sectionIndex
			}

			if err := validateField(field); err != nil {
				report(err)
			}
		}
	}
	return problems
}

func validateField(field Field) error {
	if !field.Type.Valid() {
		return fmt.Errorf("%w: %q on field %q", ErrUnknownFieldType, field.Type, field.ID)
	}

	if field.Type.Selection() {
		if len(field.Options) == 0 {
			return fmt.Errorf("%w: %s field %q requires options", ErrInvalidField, field.Type, field.ID)
		}
		values := make(map[string]struct{}, len(field.Options))
		for _, option := range field.Options {
			if _, dup := values[option.Value]; dup {
				return fmt.Errorf("%w: field %q repeats option %q", ErrInvalidField, field.ID, option.Value)
			}
			values[option.Value] = struct{}{}
		}
	} else if len(field.Options) > 0 {
		return fmt.Errorf("%w: %s field %q cannot declare options", ErrInvalidField, field.Type, field.ID)
	}

	if field.MinLength == nil && field.MaxLength == nil {
		return nil
	}
	if !field.Type.TextLike() {
		return fmt.Errorf("%w: %s field %q cannot declare length bounds", ErrInvalidField, field.Type, field.ID)
	}
	if field.MinLength != nil && *field.MinLength < 0 {
		return fmt.Errorf("%w: field %q has negative minLength", ErrInvalidField, field.ID)
	}
	if field.MaxLength != nil && *field.MaxLength < 0 {
		return fmt.Errorf("%w: field %q has negative maxLength", ErrInvalidField, field.ID)
	}
	if field.MinLength != nil && field.MaxLength != nil && *field.MinLength > *field.MaxLength {
		return fmt.Errorf("%w: field %q has minLength %d > maxLength %d", ErrInvalidField, field.ID, *field.MinLength, *field.MaxLength)
	}
	return nil
}
