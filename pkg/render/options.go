package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the session state.
type RenderOptions struct {
	// Action is the URL section forms post to. Renderers fall back to "/form".
	Action string
	// LoginAction is the URL the login form posts to. Renderers fall back to
	// "/login".
	LoginAction string
	// Hidden fields are emitted inside every form, sorted by name.
	Hidden []HiddenField
	// Flash is a one-off notice shown above the page body, for example a
	// rejected login.
	Flash string
	// Fragment renders only the section body without the surrounding page, for
	// live updates.
	Fragment bool
	// Theme carries tokens and asset resolution derived from a go-theme manifest.
	Theme *theme.RendererConfig
}

// ActionOrDefault returns Action or "/form".
func (o RenderOptions) ActionOrDefault() string {
	if o.Action == "" {
		return "/form"
	}
	return o.Action
}

// LoginActionOrDefault returns LoginAction or "/login".
func (o RenderOptions) LoginActionOrDefault() string {
	if o.LoginAction == "" {
		return "/login"
	}
	return o.LoginAction
}
