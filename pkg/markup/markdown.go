package markup

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-partials/pkg/node"
)

var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

// markdownConverter keeps raw HTML so partial elements written inside a
// markdown document reach the tree untouched.
func markdownConverter() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		)
	})
	return markdownInstance
}

// FromMarkdown converts markdown source to HTML.
func FromMarkdown(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownConverter().Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markup: convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMarkdown converts markdown to HTML and parses the result.
func ParseMarkdown(src []byte) (node.Content, error) {
	out, err := FromMarkdown(src)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(out))
}
