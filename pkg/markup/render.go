package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-partials/pkg/node"
)

// Render writes content as markup. Text is written verbatim, tag-less nodes
// contribute only their content, void elements never get an end tag, and
// other elements without content are written self-closing. Attributes with an
// empty value are written as bare names.
func Render(w io.Writer, content node.Content) error {
	r := renderer{w: w}
	r.content(content)
	return r.err
}

// RenderString renders content into a string.
func RenderString(content node.Content) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) content(content node.Content) {
	for _, entry := range content {
		switch v := entry.(type) {
		case node.Text:
			r.write(string(v))
		case *node.Node:
			r.node(v)
		default:
			if r.err == nil {
				r.err = fmt.Errorf("markup: unsupported content item %T", entry)
			}
		}
	}
}

func (r *renderer) node(n *node.Node) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		r.content(n.Content)
		return
	}

	r.write("<" + n.Tag)
	r.write(attrString(n.Attrs))

	switch {
	case IsVoid(n.Tag) && len(n.Content) == 0:
		r.write(">")
	case n.Content == nil:
		r.write("/>")
	default:
		r.write(">")
		r.content(n.Content)
		r.write("</" + n.Tag + ">")
	}
}

func attrString(attrs node.Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		if attr.Value == "" {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}
