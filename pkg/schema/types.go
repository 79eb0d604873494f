package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldOption is one selectable entry of a dropdown, radio or checkbox field.
type FieldOption struct {
	Value  string `json:"value" yaml:"value"`
	Label  string `json:"label" yaml:"label"`
	TestID string `json:"dataTestId,omitempty" yaml:"dataTestId,omitempty"`
}

// Field is a single data-entry unit. MinLength and MaxLength are pointers so an
// explicit zero bound stays distinguishable from an absent one.
type Field struct {
	ID          string        `json:"fieldId" yaml:"fieldId"`
	Type        FieldType     `json:"type" yaml:"type"`
	Label       string        `json:"label" yaml:"label"`
	Required    bool          `json:"required" yaml:"required"`
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	MinLength   *int          `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int          `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Options     []FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
	TestID      string        `json:"dataTestId,omitempty" yaml:"dataTestId,omitempty"`
}

// HasOption reports whether value is one of the field's option values.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// SectionID accepts both string and numeric identifiers on the wire; the form
// API numbers its sections.
type SectionID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *SectionID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		*id = SectionID(unquoted)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("schema: invalid sectionId %s", raw)
	}
	*id = SectionID(raw)
	return nil
}

// Section is one page of the wizard.
type Section struct {
	ID          SectionID `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Fields      []Field   `json:"fields" yaml:"fields"`
}

// FieldIDs returns the ids of the section's fields in declaration order.
func (s Section) FieldIDs() []string {
	ids := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		ids = append(ids, field.ID)
	}
	return ids
}

// Form is the root entity returned by the schema fetch. It is treated as
// read-only once decoded; a refetch replaces it wholesale.
type Form struct {
	ID       string    `json:"formId,omitempty" yaml:"formId,omitempty"`
	Title    string    `json:"formTitle,omitempty" yaml:"formTitle,omitempty"`
	Version  string    `json:"version,omitempty" yaml:"version,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Envelope is the wire wrapper used by the form API: {"form": {...}}.
type Envelope struct {
	Form Form `json:"form" yaml:"form"`
}

// Field looks up a field by id across every section.
func (f Form) Field(id string) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.ID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}

// Fields returns every field of the form in wizard order.
func (f Form) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// SectionCount is a convenience for len(f.Sections).
func (f Form) SectionCount() int {
	return len(f.Sections)
}

// Bound is a helper for building MinLength/MaxLength values in literals.
func Bound(n int) *int {
	return &n
}
