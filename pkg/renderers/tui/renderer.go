// Package tui presents the wizard in a terminal: a plain-text renderer for a
// single view and an interactive loop that walks a session section by section
// with survey prompts.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// SelectPlaceholder is the first choice of single-select prompts and stands
// for "nothing selected".
const SelectPlaceholder = "Select an option"

// Renderer implements render.Renderer for terminals and drives interactive
// sessions through Run.
type Renderer struct {
	driver        PromptDriver
	out           io.Writer
	theme         Theme
	useColor      bool
	confirmSubmit bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver writing to stdout.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:   os.Stdout,
		theme: DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes a text summary of the view: the lifecycle message, or the
// current section with each field's value and error.
func (r *Renderer) Render(ctx context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	switch view.Status {
	case wizard.StatusLoading:
		b.WriteString("Loading...\n")
	case wizard.StatusFailed:
		b.WriteString(r.style(view.Message, r.theme.Error))
		b.WriteByte('\n')
	case wizard.StatusSubmitted:
		b.WriteString(r.style("Form submitted.", r.theme.Success))
		b.WriteByte('\n')
	case wizard.StatusReady:
		if view.Total == 0 {
			return nil, render.ErrNoSection
		}
		b.WriteString(r.sectionHeader(view))
		for _, field := range view.Section.Fields {
			line, err := r.fieldSummary(field, view.Value(field.ID))
			if err != nil {
				return nil, err
			}
			b.WriteString(line)
			b.WriteByte('\n')
			if msg := view.Error(field.ID); msg != "" {
				b.WriteString("    ")
				b.WriteString(r.style(msg, r.theme.Error))
				b.WriteByte('\n')
			}
		}
		b.WriteString(r.style(strings.Join(actionLabels(view), "  "), r.theme.Muted))
		b.WriteByte('\n')
	default:
		b.WriteString("Not logged in.\n")
	}
	return []byte(b.String()), nil
}

func (r *Renderer) sectionHeader(view render.View) string {
	var b strings.Builder
	if view.FormTitle != "" {
		b.WriteString(r.style(view.FormTitle, r.theme.Header))
		b.WriteByte('\n')
	}
	b.WriteString(r.style(fmt.Sprintf("%s (%d/%d)", view.Section.Title, view.Step(), view.Total), r.theme.Title))
	b.WriteByte('\n')
	if desc := strings.TrimSpace(view.Section.Description); desc != "" {
		b.WriteString(r.style(desc, r.theme.Muted))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) fieldSummary(field schema.Field, value schema.Value) (string, error) {
	var shown string
	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypePhone, schema.FieldTypeEmail,
		schema.FieldTypeDate, schema.FieldTypeTextArea:
		shown = value.Text()
	case schema.FieldTypeDropdown, schema.FieldTypeRadio, schema.FieldTypeCheckbox:
		labels := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			if value.Contains(option.Value) {
				labels = append(labels, option.Label)
			}
		}
		shown = strings.Join(labels, ", ")
	default:
		return "", fmt.Errorf("%w: %q on field %q", render.ErrUnsupportedField, field.Type, field.ID)
	}
	if shown == "" {
		shown = r.style("-", r.theme.Muted)
	}
	return fmt.Sprintf("  %s: %s", fieldLabel(field), shown), nil
}

func actionLabels(view render.View) []string {
	var labels []string
	if view.CanPrev {
		labels = append(labels, "[Previous]")
	}
	if view.CanNext {
		labels = append(labels, "[Next]")
	}
	if view.CanSubmit {
		labels = append(labels, "[Submit]")
	}
	return labels
}

func fieldLabel(field schema.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func (r *Renderer) style(text string, style lipgloss.Style) string {
	if !r.useColor || text == "" {
		return text
	}
	return style.Render(text)
}
