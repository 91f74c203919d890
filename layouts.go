package partials

import (
	"embed"
	"io/fs"
)

//go:embed layouts/*.tpl
var embeddedLayouts embed.FS

// EmbeddedLayouts exposes the built-in pongo2 layouts (`page` and
// `fragment`) so callers can wrap output without shipping templates.
//
// Typical use:
//
//	engine, err := layout.New(layout.WithFS(partials.EmbeddedLayouts()))
func EmbeddedLayouts() fs.FS {
	sub, err := fs.Sub(embeddedLayouts, "layouts")
	if err != nil {
		return embeddedLayouts
	}
	return sub
}
