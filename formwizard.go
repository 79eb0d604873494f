// Package formwizard is the top-level entry point for callers that want a
// rendered wizard section without assembling a controller and server.
package formwizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/controller"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// PreviewRollNumber labels the state built for offline previews.
const PreviewRollNumber = "preview"

// ErrSectionOutOfRange reports a preview section outside the fetched form.
var ErrSectionOutOfRange = errors.New("formwizard: section out of range")

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// NewController exposes the controller constructor from the top-level module.
func NewController(fetcher client.Fetcher, options ...controller.Option) *controller.Controller {
	return controller.New(fetcher, options...)
}

type previewConfig struct {
	registry *render.Registry
	styles   bool
	options  render.RenderOptions
}

// PreviewOption tunes Preview.
type PreviewOption func(*previewConfig)

// WithRegistry renders through registry instead of the built-in renderers.
func WithRegistry(registry *render.Registry) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.registry = registry
	}
}

// WithDefaultStyles inlines the default stylesheet into vanilla output.
func WithDefaultStyles(enabled bool) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.styles = enabled
	}
}

// WithRenderOptions forwards per-render options such as Fragment.
func WithRenderOptions(options render.RenderOptions) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.options = options
	}
}

// Preview fetches the form, positions a ready state on the one-based section
// and renders it with the named renderer.
func Preview(ctx context.Context, fetcher client.Fetcher, section int, rendererName string, options ...PreviewOption) ([]byte, error) {
	cfg := previewConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	form, err := fetcher.Fetch(ctx, PreviewRollNumber)
	if err != nil {
		return nil, err
	}
	if section < 1 || section > form.SectionCount() {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrSectionOutOfRange, section, form.SectionCount())
	}

	registry := cfg.registry
	if registry == nil {
		registry, err = DefaultRegistry(cfg.styles)
		if err != nil {
			return nil, err
		}
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
	}

	state := wizard.NewState()
	state.Begin(PreviewRollNumber)
	state.Loaded(form)
	state.Index = section - 1

	return renderer.Render(ctx, render.ViewFromState(state), cfg.options)
}

// DefaultRegistry registers the vanilla HTML and terminal text renderers.
func DefaultRegistry(styles bool) (*render.Registry, error) {
	var vanillaOptions []vanilla.Option
	if styles {
		vanillaOptions = append(vanillaOptions, vanilla.WithDefaultStyles())
	}
	html, err := vanilla.New(vanillaOptions...)
	if err != nil {
		return nil, err
	}
	text, err := tui.New()
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(text); err != nil {
		return nil, err
	}
	return registry, nil
}
