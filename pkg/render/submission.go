package render

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the hidden inputs section forms carry so a server can route the
// posted transition.
const (
	ActionFieldName  = "_action"
	SectionFieldName = "_section"
	CSRFFieldName    = "_csrf"
)

// Transition names posted in the ActionFieldName input.
const (
	ActionNext   = "next"
	ActionPrev   = "prev"
	ActionSubmit = "submit"
)

// HiddenField represents a hidden form input emitted alongside the visible
// section.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs the hidden field carrying a session's anti-forgery token.
func CSRFToken(token string) HiddenField {
	return Hidden(CSRFFieldName, token)
}

// SectionField records which section index the posted values belong to, so a
// stale tab cannot apply values to a different section.
func SectionField(index int) HiddenField {
	return Hidden(SectionFieldName, index)
}

// SortedHiddenFields drops empty names, lets later fields win on collisions and
// sorts by name for deterministic rendering.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		clean[name] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
