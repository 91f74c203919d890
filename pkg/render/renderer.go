package render

import (
	"context"

	"github.com/goliatone/go-partials/pkg/node"
)

// Renderer converts a processed node tree into bytes (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, content node.Content) ([]byte, error)
}
