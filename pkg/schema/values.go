package schema

import (
	"bytes"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueText
	ValueSet
	ValueBool
)

// Value is the current entry for one field: free text, a set of selected
// option values, or a boolean flag.
type Value struct {
	kind ValueKind
	text string
	set  []string
	flag bool
}

// Text builds a text value.
func Text(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Set builds a set value, dropping duplicates while keeping first-seen order.
func Set(values ...string) Value {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return Value{kind: ValueSet, set: out}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{kind: ValueBool, flag: b}
}

// Kind reports the held variant.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the text variant, or the single selected entry of a set so a
// radio or dropdown value reads naturally.
func (v Value) Text() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueSet:
		if len(v.set) == 1 {
			return v.set[0]
		}
	case ValueBool:
		if v.flag {
			return "true"
		}
		return "false"
	}
	return ""
}

// Strings returns the set variant. A non-empty text value is returned as a one
// element slice.
func (v Value) Strings() []string {
	switch v.kind {
	case ValueSet:
		return append([]string(nil), v.set...)
	case ValueText:
		if v.text != "" {
			return []string{v.text}
		}
	}
	return nil
}

// Bool returns the boolean variant.
func (v Value) Bool() bool {
	return v.kind == ValueBool && v.flag
}

// Contains reports whether option is selected.
func (v Value) Contains(option string) bool {
	switch v.kind {
	case ValueSet:
		return slices.Contains(v.set, option)
	case ValueText:
		return v.text == option
	default:
		return false
	}
}

// IsEmpty reports whether the value satisfies nothing for a required check:
// missing, the empty string, an empty set or false. Whitespace is content.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueText:
		return v.text == ""
	case ValueSet:
		return len(v.set) == 0
	case ValueBool:
		return !v.flag
	default:
		return true
	}
}

// Equal compares two values variant-wise.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	return v.text == other.text && v.flag == other.flag && slices.Equal(v.set, other.set)
}

// Interface returns the plain Go representation (string, []string, bool or nil).
func (v Value) Interface() any {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueSet:
		return v.Strings()
	case ValueBool:
		return v.flag
	default:
		return nil
	}
}

// MarshalJSON encodes the value as a JSON string, array or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == ValueSet && v.set == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a JSON string, array of strings, boolean or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueFrom(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueFrom converts decoded JSON/YAML data into a Value.
func ValueFrom(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case string:
		return Text(typed), nil
	case bool:
		return Bool(typed), nil
	case []string:
		return Set(typed...), nil
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("schema: set entries must be strings, got %T", item)
			}
			items = append(items, s)
		}
		return Set(items...), nil
	default:
		return Value{}, fmt.Errorf("schema: unsupported value type %T", raw)
	}
}

// FormValues maps field ids to their current value across every section.
type FormValues map[string]Value

// Clone returns a copy that shares no slices with fv.
func (fv FormValues) Clone() FormValues {
	out := make(FormValues, len(fv))
	for id, value := range fv {
		if value.kind == ValueSet {
			value.set = append([]string(nil), value.set...)
		}
		out[id] = value
	}
	return out
}

// Get returns the value for id, or the zero Value.
func (fv FormValues) Get(id string) Value {
	if fv == nil {
		return Value{}
	}
	return fv[id]
}

// Plain converts the map into JSON-friendly Go values keyed by field id.
func (fv FormValues) Plain() map[string]any {
	out := make(map[string]any, len(fv))
	for id, value := range fv {
		out[id] = value.Interface()
	}
	return out
}
