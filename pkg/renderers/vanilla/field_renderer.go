package vanilla

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// SelectPlaceholder is the label of the empty sentinel option that leads every
// dropdown.
const SelectPlaceholder = "Select an option"

// renderField produces the markup for one field: label with a required marker,
// the control for its type bound to the field id and pre-filled from value,
// and the visible error message when errMsg is set.
func renderField(field schema.Field, value schema.Value, errMsg string) (string, error) {
	control, err := renderControl(field, value, errMsg != "")
	if err != nil {
		return "", err
	}

	id := html.EscapeString(field.ID)
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="fw-field`)
	if errMsg != "" {
		b.WriteString(` fw-field--invalid`)
	}
	b.WriteString(`" data-field-id="`)
	b.WriteString(id)
	b.WriteString(`" data-field-type="`)
	b.WriteString(html.EscapeString(string(field.Type)))
	b.WriteString("\">\n")

	if labelBindsControl(field.Type) {
		b.WriteString(`  <label class="fw-label" for="`)
		b.WriteString(html.EscapeString(controlID(field.ID)))
		b.WriteString(`">`)
	} else {
		b.WriteString(`  <label class="fw-label" id="`)
		b.WriteString(html.EscapeString(controlID(field.ID)))
		b.WriteString(`-label">`)
	}
	b.WriteString(html.EscapeString(field.Label))
	if field.Required {
		b.WriteString(`<span class="fw-required" aria-hidden="true">*</span>`)
	}
	b.WriteString("</label>\n")

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if errMsg != "" {
		b.WriteString(`  <p class="fw-error" id="`)
		b.WriteString(html.EscapeString(errorID(field.ID)))
		b.WriteString(`" role="alert">`)
		b.WriteString(html.EscapeString(errMsg))
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>")
	return b.String(), nil
}

func renderControl(field schema.Field, value schema.Value, invalid bool) (string, error) {
	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypePhone, schema.FieldTypeEmail:
		return textInput(field, string(field.Type), value, invalid, true), nil
	case schema.FieldTypeDate:
		return textInput(field, "date", value, invalid, false), nil
	case schema.FieldTypeTextArea:
		return textArea(field, value, invalid), nil
	case schema.FieldTypeDropdown:
		return dropdown(field, value, invalid), nil
	case schema.FieldTypeRadio:
		return choiceGroup(field, "radio", value, invalid), nil
	case schema.FieldTypeCheckbox:
		return choiceGroup(field, "checkbox", value, invalid), nil
	default:
		return "", fmt.Errorf("%w: %q on field %q", render.ErrUnsupportedField, field.Type, field.ID)
	}
}

func textInput(field schema.Field, inputType string, value schema.Value, invalid, lengths bool) string {
	var b strings.Builder
	b.WriteString(`<input class="fw-input"`)
	attr(&b, "id", controlID(field.ID))
	attr(&b, "name", field.ID)
	attr(&b, "type", inputType)
	attr(&b, "value", value.Text())
	if lengths && field.Placeholder != "" {
		attr(&b, "placeholder", field.Placeholder)
	}
	constraints(&b, field, invalid, lengths)
	b.WriteString(">")
	return b.String()
}

func textArea(field schema.Field, value schema.Value, invalid bool) string {
	var b strings.Builder
	b.WriteString(`<textarea class="fw-input fw-textarea"`)
	attr(&b, "id", controlID(field.ID))
	attr(&b, "name", field.ID)
	if field.Placeholder != "" {
		attr(&b, "placeholder", field.Placeholder)
	}
	constraints(&b, field, invalid, true)
	b.WriteString(">")
	b.WriteString(html.EscapeString(value.Text()))
	b.WriteString("</textarea>")
	return b.String()
}

func dropdown(field schema.Field, value schema.Value, invalid bool) string {
	selected := value.Text()

	var b strings.Builder
	b.WriteString(`<select class="fw-input fw-select"`)
	attr(&b, "id", controlID(field.ID))
	attr(&b, "name", field.ID)
	constraints(&b, field, invalid, false)
	b.WriteString(">\n")

	b.WriteString(`  <option value="">`)
	b.WriteString(SelectPlaceholder)
	b.WriteString("</option>\n")
	for _, option := range field.Options {
		b.WriteString(`  <option`)
		attr(&b, "value", option.Value)
		if option.TestID != "" {
			attr(&b, "data-testid", option.TestID)
		}
		if option.Value == selected {
			b.WriteString(" selected")
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(option.Label))
		b.WriteString("</option>\n")
	}
	b.WriteString("</select>")
	return b.String()
}

// choiceGroup renders one input per option under a shared name so the
// submitted value is the option value (radio) or the set of checked values
// (checkbox).
func choiceGroup(field schema.Field, inputType string, value schema.Value, invalid bool) string {
	var b strings.Builder
	b.WriteString(`<div class="fw-choices" role="`)
	if inputType == "radio" {
		b.WriteString("radiogroup")
	} else {
		b.WriteString("group")
	}
	b.WriteByte('"')
	attr(&b, "aria-labelledby", controlID(field.ID)+"-label")
	if field.TestID != "" {
		attr(&b, "data-testid", field.TestID)
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
		attr(&b, "aria-describedby", errorID(field.ID))
	}
	b.WriteString(">\n")

	for i, option := range field.Options {
		b.WriteString(`  <label class="fw-choice"><input`)
		attr(&b, "id", controlID(field.ID)+"-"+strconv.Itoa(i))
		attr(&b, "name", field.ID)
		attr(&b, "type", inputType)
		attr(&b, "value", option.Value)
		if option.TestID != "" {
			attr(&b, "data-testid", option.TestID)
		}
		if value.Contains(option.Value) {
			b.WriteString(" checked")
		}
		if inputType == "radio" && field.Required {
			b.WriteString(" required")
		}
		b.WriteString("><span>")
		b.WriteString(html.EscapeString(option.Label))
		b.WriteString("</span></label>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// constraints mirrors the field rules as native attributes. The section form
// is rendered with novalidate, so they inform assistive tech and client
// scripts while the server remains the authority.
func constraints(b *strings.Builder, field schema.Field, invalid, lengths bool) {
	if field.Required {
		b.WriteString(" required")
	}
	if lengths {
		if field.MinLength != nil {
			attr(b, "minlength", strconv.Itoa(*field.MinLength))
		}
		if field.MaxLength != nil {
			attr(b, "maxlength", strconv.Itoa(*field.MaxLength))
		}
	}
	if field.TestID != "" {
		attr(b, "data-testid", field.TestID)
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
		attr(b, "aria-describedby", errorID(field.ID))
	}
}

func attr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

func controlID(fieldID string) string {
	return "fw-" + strings.TrimSpace(fieldID)
}

func errorID(fieldID string) string {
	return controlID(fieldID) + "-error"
}

func labelBindsControl(t schema.FieldType) bool {
	return !(t == schema.FieldTypeRadio || t == schema.FieldTypeCheckbox)
}
