package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Session is the slice of a form controller the interactive loop drives.
type Session interface {
	Snapshot() wizard.State
	SetValue(id string, value schema.Value) error
	Next() (bool, error)
	Prev() error
	Submit(ctx context.Context) (bool, error)
}

const (
	choiceNext   = "Next"
	choicePrev   = "Previous"
	choiceSubmit = "Submit"
)

// Run walks a ready session: it prompts every field of the current section,
// then offers the transitions available there, until the form is submitted or
// the user aborts. Validation failures are printed and the section is asked
// again with the entered values as defaults.
func (r *Renderer) Run(ctx context.Context, session Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := session.Snapshot()
		switch state.Status {
		case wizard.StatusSubmitted:
			return r.driver.Info(ctx, r.style("Form submitted.", r.theme.Success))
		case wizard.StatusFailed:
			_ = r.driver.Info(ctx, r.style(state.Message, r.theme.Error))
			return ErrLoadFailed
		case wizard.StatusReady:
		default:
			return wizard.ErrNotReady
		}

		section, _ := state.CurrentSection()
		if err := r.driver.Info(ctx, strings.TrimRight(r.sectionHeaderFor(state, section), "\n")); err != nil {
			return err
		}

		for _, field := range section.Fields {
			if err := r.promptField(ctx, session, field, state); err != nil {
				return err
			}
		}

		if err := r.transition(ctx, session, state); err != nil {
			return err
		}
	}
}

func (r *Renderer) sectionHeaderFor(state wizard.State, section schema.Section) string {
	var b strings.Builder
	if state.Form.Title != "" && state.Index == 0 {
		b.WriteString(r.style(state.Form.Title, r.theme.Header))
		b.WriteByte('\n')
	}
	b.WriteString(r.style(fmt.Sprintf("%s (%d/%d)", section.Title, state.Index+1, len(state.Form.Sections)), r.theme.Title))
	if desc := strings.TrimSpace(section.Description); desc != "" {
		b.WriteByte('\n')
		b.WriteString(r.style(desc, r.theme.Muted))
	}
	return b.String()
}

func (r *Renderer) transition(ctx context.Context, session Session, state wizard.State) error {
	var choices []string
	if state.CanNext() {
		choices = append(choices, choiceNext)
	}
	if state.CanSubmit() {
		choices = append(choices, choiceSubmit)
	}
	if state.CanPrev() {
		choices = append(choices, choicePrev)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Continue", Options: choices})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("tui: invalid choice %d", idx)
	}

	switch choices[idx] {
	case choicePrev:
		return session.Prev()
	case choiceNext:
		advanced, err := session.Next()
		if err != nil {
			return err
		}
		if !advanced {
			return r.reportErrors(ctx, session)
		}
	case choiceSubmit:
		if r.confirmSubmit {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit the form?", Default: true})
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		submitted, err := session.Submit(ctx)
		if err != nil {
			return err
		}
		if !submitted {
			return r.reportErrors(ctx, session)
		}
	}
	return nil
}

func (r *Renderer) reportErrors(ctx context.Context, session Session) error {
	state := session.Snapshot()
	section, ok := state.CurrentSection()
	if !ok {
		return nil
	}
	for _, field := range section.Fields {
		if msg := state.ErrorFor(field.ID); msg != "" {
			line := fmt.Sprintf("%s: %s", field.Label, msg)
			if err := r.driver.Info(ctx, r.style(line, r.theme.Error)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, session Session, field schema.Field, state wizard.State) error {
	current := state.Values.Get(field.ID)
	label := fieldLabel(field)
	help := state.ErrorFor(field.ID)

	var value schema.Value
	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypePhone, schema.FieldTypeEmail, schema.FieldTypeDate:
		if field.Type == schema.FieldTypeDate && help == "" {
			help = "YYYY-MM-DD"
		} else if help == "" {
			help = field.Placeholder
		}
		text, err := r.driver.Input(ctx, InputConfig{Message: label, Default: current.Text(), Help: help})
		if err != nil {
			return err
		}
		value = schema.Text(text)
	case schema.FieldTypeTextArea:
		if help == "" {
			help = field.Placeholder
		}
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current.Text(), Help: help})
		if err != nil {
			return err
		}
		value = schema.Text(text)
	case schema.FieldTypeDropdown, schema.FieldTypeRadio:
		options := make([]string, 0, len(field.Options)+1)
		options = append(options, SelectPlaceholder)
		defaultIdx := 0
		for i, option := range field.Options {
			options = append(options, option.Label)
			if current.Contains(option.Value) {
				defaultIdx = i + 1
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: defaultIdx, Help: help})
		if err != nil {
			return err
		}
		switch {
		case idx <= 0 || idx > len(field.Options):
			value = schema.Text("")
		default:
			value = schema.Text(field.Options[idx-1].Value)
		}
	case schema.FieldTypeCheckbox:
		options := make([]string, 0, len(field.Options))
		var defaults []int
		for i, option := range field.Options {
			options = append(options, option.Label)
			if current.Contains(option.Value) {
				defaults = append(defaults, i)
			}
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: options, Defaults: defaults, Help: help})
		if err != nil {
			return err
		}
		selected := make([]string, 0, len(indices))
		for _, i := range indices {
			if i >= 0 && i < len(field.Options) {
				selected = append(selected, field.Options[i].Value)
			}
		}
		value = schema.Set(selected...)
	default:
		return fmt.Errorf("tui: field %q: unsupported type %q", field.ID, field.Type)
	}

	if err := session.SetValue(field.ID, value); err != nil && !errors.Is(err, wizard.ErrInvalidOption) {
		return err
	}
	return nil
}
