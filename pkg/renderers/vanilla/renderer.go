// Package vanilla renders the wizard as server-side HTML: one page per
// lifecycle phase, with the current section's fields drawn by a closed switch
// over the field types.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	templateLogin     = "templates/login.tmpl"
	templateLoading   = "templates/loading.tmpl"
	templateError     = "templates/error.tmpl"
	templateSection   = "templates/section.tmpl"
	templateFragment  = "templates/partials/section_body.tmpl"
	templateSubmitted = "templates/submitted.tmpl"
)

// loadingRefreshSeconds is how often the loading page reloads itself.
const loadingRefreshSeconds = 1

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet from every page.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into every page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheets  []string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:   templates,
		stylesheets: append([]string(nil), cfg.stylesheets...),
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the page for the view's lifecycle phase. With
// options.Fragment set and a ready view, only the section form is returned.
func (r *Renderer) Render(_ context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := r.pageData(view, options)

	var name string
	switch view.Status {
	case wizard.StatusLoading:
		name = templateLoading
		data["refresh"] = loadingRefreshSeconds
	case wizard.StatusFailed:
		name = templateError
		data["message"] = view.Message
	case wizard.StatusSubmitted:
		name = templateSubmitted
	case wizard.StatusReady:
		if err := r.sectionData(data, view); err != nil {
			return nil, err
		}
		name = templateSection
		if options.Fragment {
			name = templateFragment
		}
	default:
		name = templateLogin
		data["roll_number"] = view.RollNumber
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderField returns the markup for a single field. It is exposed for live
// updates that replace one field after a value change.
func RenderField(view render.View, fieldID string) (string, error) {
	for _, field := range view.Section.Fields {
		if field.ID == fieldID {
			return renderField(field, view.Value(field.ID), view.Error(field.ID))
		}
	}
	return "", fmt.Errorf("vanilla renderer: field %q is not in the current section", fieldID)
}

func (r *Renderer) pageData(view render.View, options render.RenderOptions) map[string]any {
	data := map[string]any{
		"title":         view.FormTitle,
		"flash":         options.Flash,
		"hidden":        render.SortedHiddenFields(options.Hidden...),
		"action":        options.ActionOrDefault(),
		"login_action":  options.LoginActionOrDefault(),
		"stylesheets":   r.stylesheetLinks(options),
		"inline_styles": r.inlineStyles,
		"theme":         themeContext(options),
	}
	return data
}

func (r *Renderer) sectionData(data map[string]any, view render.View) error {
	if view.Total == 0 {
		return render.ErrNoSection
	}

	fields := make([]string, 0, len(view.Section.Fields))
	for _, field := range view.Section.Fields {
		markup, err := renderField(field, view.Value(field.ID), view.Error(field.ID))
		if err != nil {
			return fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, markup)
	}

	hidden, _ := data["hidden"].([]render.HiddenField)
	hidden = render.SortedHiddenFields(append(hidden, render.SectionField(view.Index))...)

	data["hidden"] = hidden
	data["form_title"] = view.FormTitle
	data["section"] = view.Section
	data["description"] = sanitizeDescription(view.Section.Description)
	data["fields"] = fields
	data["index"] = view.Index
	data["step"] = view.Step()
	data["total"] = view.Total
	data["can_prev"] = view.CanPrev
	data["can_submit"] = view.CanSubmit
	return nil
}

func (r *Renderer) stylesheetLinks(options render.RenderOptions) []string {
	links := append([]string(nil), r.stylesheets...)
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL("stylesheet"); href != "" {
			links = append(links, href)
		}
	}
	return links
}

func themeContext(options render.RenderOptions) map[string]any {
	cfg := options.Theme
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   render.CSSVarsStyle(cfg.CSSVars),
	}
}
