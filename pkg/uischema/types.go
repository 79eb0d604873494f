package uischema

// AnyForm keys an overlay that applies to every form id.
const AnyForm = "*"

// Store keeps the parsed overlays keyed by form id. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	forms map[string]FormOverlay
}

// FormOverlay describes the copy overrides for one form.
type FormOverlay struct {
	ID       string
	Source   string
	Title    string
	Sections map[string]SectionOverlay
	Fields   map[string]FieldOverlay
}

// SectionOverlay overrides a section's heading. Sections are matched by
// sectionId, or by 1-based position when the key is "#n".
type SectionOverlay struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// FieldOverlay overrides a field's copy. Options maps option values to new
// labels.
type FieldOverlay struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Form returns the overlay for id, falling back to the AnyForm entry.
func (s *Store) Form(id string) (FormOverlay, bool) {
	if s == nil {
		return FormOverlay{}, false
	}
	if overlay, ok := s.forms[id]; ok {
		return overlay, true
	}
	overlay, ok := s.forms[AnyForm]
	return overlay, ok
}
