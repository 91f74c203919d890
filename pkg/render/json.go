package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-partials/pkg/node"
)

// JSON writes the tree in its JSON form, indented, for inspection or for
// tools that consume JSON node trees.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(ctx context.Context, content node.Content) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if content == nil {
		content = node.Content{}
	}
	raw, err := content.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
