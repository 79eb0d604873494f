// Package validation applies the per-field rules of the wizard: required for
// every type, plus minLength/maxLength for the free-text types. Messages are
// fixed strings so renderers can surface them verbatim.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// MessageRequired is reported for a required field without a value.
const MessageRequired = "This field is required"

// MessageInvalidValue is reported when a posted value was rejected outright,
// such as an option the field does not declare.
const MessageInvalidValue = "Please choose a valid value"

// MinLengthMessage formats the minimum length violation.
func MinLengthMessage(n int) string {
	return fmt.Sprintf("Minimum length is %d", n)
}

// MaxLengthMessage formats the maximum length violation.
func MaxLengthMessage(n int) string {
	return fmt.Sprintf("Maximum length is %d", n)
}

// FieldError ties a violation message to the field it belongs to.
type FieldError struct {
	FieldID string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.FieldID, e.Message)
}

// Rules is the resolved rule set of a single field.
type Rules struct {
	Required  bool
	MinLength *int
	MaxLength *int
}

// RulesFor derives the applicable rules from the field type. Length bounds are
// only honoured on text-like types.
func RulesFor(field schema.Field) Rules {
	rules := Rules{Required: field.Required}
	if field.Type.TextLike() {
		rules.MinLength = field.MinLength
		rules.MaxLength = field.MaxLength
	}
	return rules
}

// Check returns the first violated rule message for value, or "" when the
// value passes. Order: required, minLength, maxLength. Length rules are skipped
// for empty values so optional fields can stay blank.
func (r Rules) Check(value schema.Value) string {
	if value.IsEmpty() {
		if r.Required {
			return MessageRequired
		}
		return ""
	}

	if r.MinLength == nil && r.MaxLength == nil {
		return ""
	}

	length := utf8.RuneCountInString(value.Text())
	if r.MinLength != nil && length < *r.MinLength {
		return MinLengthMessage(*r.MinLength)
	}
	if r.MaxLength != nil && length > *r.MaxLength {
		return MaxLengthMessage(*r.MaxLength)
	}
	return ""
}

// Field validates one field against its current value.
func Field(field schema.Field, value schema.Value) string {
	return RulesFor(field).Check(value)
}

// Fields validates exactly the given fields and returns a message per failing
// field id. A nil map means every field passed.
func Fields(fields []schema.Field, values schema.FormValues) map[string]string {
	var errs map[string]string
	for _, field := range fields {
		if msg := Field(field, values.Get(field.ID)); msg != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[field.ID] = msg
		}
	}
	return errs
}

// IDs validates the fields of form named by ids. Unknown ids are ignored.
func IDs(form schema.Form, ids []string, values schema.FormValues) map[string]string {
	fields := make([]schema.Field, 0, len(ids))
	for _, id := range ids {
		if field, ok := form.Field(id); ok {
			fields = append(fields, field)
		}
	}
	return Fields(fields, values)
}

// Errors flattens an error map into FieldError values ordered like fields.
func Errors(fields []schema.Field, errs map[string]string) []FieldError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(errs))
	for _, field := range fields {
		if msg, ok := errs[field.ID]; ok {
			out = append(out, FieldError{FieldID: field.ID, Message: msg})
		}
	}
	return out
}
