package uischema

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Decorator applies overlay copy to fetched forms.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by store. When store is nil or empty
// the decorator is a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate returns a copy of form with the matching overlay applied. The input
// form is never mutated; forms without an overlay come back unchanged.
func (d *Decorator) Decorate(form schema.Form) schema.Form {
	if d == nil || d.store.Empty() {
		return form
	}
	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return form
	}

	out := form
	if overlay.Title != "" {
		out.Title = overlay.Title
	}

	out.Sections = make([]schema.Section, len(form.Sections))
	for idx, section := range form.Sections {
		section.Fields = decorateFields(section.Fields, overlay.Fields)
		if cfg, ok := sectionOverlay(overlay, section, idx); ok {
			if cfg.Title != "" {
				section.Title = cfg.Title
			}
			if cfg.Description != "" {
				section.Description = cfg.Description
			}
		}
		out.Sections[idx] = section
	}
	return out
}

// Fetcher wraps next so every fetched form is decorated.
func (d *Decorator) Fetcher(next client.Fetcher) client.Fetcher {
	return client.FetcherFunc(func(ctx context.Context, rollNumber string) (schema.Form, error) {
		form, err := next.Fetch(ctx, rollNumber)
		if err != nil {
			return schema.Form{}, err
		}
		return d.Decorate(form), nil
	})
}

func sectionOverlay(overlay FormOverlay, section schema.Section, idx int) (SectionOverlay, bool) {
	if id := strings.TrimSpace(string(section.ID)); id != "" {
		if cfg, ok := overlay.Sections[id]; ok {
			return cfg, true
		}
	}
	cfg, ok := overlay.Sections["#"+strconv.Itoa(idx+1)]
	return cfg, ok
}

func decorateFields(fields []schema.Field, overrides map[string]FieldOverlay) []schema.Field {
	out := make([]schema.Field, len(fields))
	for idx, field := range fields {
		cfg, ok := overrides[field.ID]
		if !ok {
			out[idx] = field
			continue
		}
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		if len(field.Options) > 0 {
			options := make([]schema.FieldOption, len(field.Options))
			for i, option := range field.Options {
				if label := cfg.Options[option.Value]; label != "" {
					option.Label = label
				}
				options[i] = option
			}
			field.Options = options
		}
		out[idx] = field
	}
	return out
}

// Check reports overlay entries that name fields or sections the form does
// not have. Stale overlays are harmless at runtime but usually a typo.
func (d *Decorator) Check(form schema.Form) []string {
	if d == nil || d.store.Empty() {
		return nil
	}
	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}

	var problems []string
	for id := range overlay.Fields {
		if _, ok := form.Field(id); !ok {
			problems = append(problems, fmt.Sprintf("field %q not in form", id))
		}
	}
	for key := range overlay.Sections {
		if !hasSection(form, key) {
			problems = append(problems, fmt.Sprintf("section %q not in form", key))
		}
	}
	sort.Strings(problems)
	return problems
}

func hasSection(form schema.Form, key string) bool {
	if n, ok := strings.CutPrefix(key, "#"); ok {
		pos, err := strconv.Atoi(n)
		return err == nil && pos >= 1 && pos <= form.SectionCount()
	}
	for _, section := range form.Sections {
		if string(section.ID) == key {
			return true
		}
	}
	return false
}
