package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-partials/pkg/markup"
	"github.com/goliatone/go-partials/pkg/node"
)

// HTML serialises the tree back to markup.
type HTML struct{}

func (HTML) Name() string        { return "html" }
func (HTML) ContentType() string { return "text/html; charset=utf-8" }

func (HTML) Render(ctx context.Context, content node.Content) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := markup.Render(&buf, content); err != nil {
		return nil, fmt.Errorf("render: html: %w", err)
	}
	return buf.Bytes(), nil
}
