package formwizard

import (
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet for serving under /assets.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
