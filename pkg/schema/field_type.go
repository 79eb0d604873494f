package schema

import "strings"

// FieldType is the closed set of control kinds a form field can use. The
// string values match the wire names used by the form API.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypePhone    FieldType = "tel"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldTypes lists every supported type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypePhone,
		FieldTypeEmail,
		FieldTypeDate,
		FieldTypeTextArea,
		FieldTypeDropdown,
		FieldTypeRadio,
		FieldTypeCheckbox,
	}
}

// ParseFieldType normalises raw into a FieldType, reporting false for values
// outside the closed set.
func ParseFieldType(raw string) (FieldType, bool) {
	candidate := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if candidate.Valid() {
		return candidate, true
	}
	return "", false
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypePhone, FieldTypeEmail, FieldTypeDate,
		FieldTypeTextArea, FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// TextLike reports whether the type accepts free text and therefore honours
// minLength/maxLength.
func (t FieldType) TextLike() bool {
	switch t {
	case FieldTypeText, FieldTypePhone, FieldTypeEmail, FieldTypeTextArea:
		return true
	default:
		return false
	}
}

// Selection reports whether the type picks from a list of options.
func (t FieldType) Selection() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// MultiValue reports whether the field stores a set of selected values.
func (t FieldType) MultiValue() bool {
	return t == FieldTypeCheckbox
}

// String implements fmt.Stringer.
func (t FieldType) String() string {
	return string(t)
}
