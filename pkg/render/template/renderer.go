package template

import (
	"io"
)

// TemplateRenderer is the contract page renderers rely on. Data is a map or a
// struct whose exported fields templates read directly.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data map[string]any) error
}
