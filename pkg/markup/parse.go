package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-partials/pkg/node"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}

// Parse tokenizes r into a node tree. Void elements and self-closing tags
// produce nodes with nil content; every other element gets non-nil content.
// End tags close the nearest matching open element, stray end tags are
// dropped, and elements left open at EOF are closed implicitly. Tag names are
// lowercased; attribute names keep the case they were written in.
func Parse(r io.Reader) (node.Content, error) {
	if r == nil {
		return nil, errors.New("markup: reader is nil")
	}

	z := html.NewTokenizer(r)
	root := &node.Node{Content: node.Content{}}
	stack := []*node.Node{root}

	appendItem := func(item node.Item) {
		parent := stack[len(stack)-1]
		parent.Content = append(parent.Content, item)
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("markup: tokenize: %w", err)
			}
			return root.Content, nil

		case html.TextToken, html.CommentToken, html.DoctypeToken:
			raw := string(z.Raw())
			if raw == "" {
				continue
			}
			appendItem(node.Text(raw))

		case html.StartTagToken, html.SelfClosingTagToken:
			// Token lowercases the buffer Raw points into.
			names := attrNames(z.Raw())
			tok := z.Token()
			n := &node.Node{Tag: tok.Data, Attrs: convertAttrs(tok.Attr, names)}
			appendItem(n)
			if tt == html.SelfClosingTagToken || IsVoid(tok.Data) {
				continue
			}
			n.Content = node.Content{}
			stack = append(stack, n)

		case html.EndTagToken:
			tok := z.Token()
			for idx := len(stack) - 1; idx > 0; idx-- {
				if stack[idx].Tag == tok.Data {
					stack = stack[:idx]
					break
				}
			}
		}
	}
}

// ParseString parses markup held in a string.
func ParseString(src string) (node.Content, error) {
	return Parse(strings.NewReader(src))
}

func convertAttrs(attrs []html.Attribute, names []string) node.Attrs {
	if len(attrs) == 0 {
		return nil
	}
	out := make(node.Attrs, 0, len(attrs))
	for idx, attr := range attrs {
		key := attr.Key
		if idx < len(names) && strings.EqualFold(names[idx], key) {
			key = names[idx]
		}
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + key
		}
		out = append(out, node.Attr{Key: key, Value: attr.Val})
	}
	return out
}

// attrNames returns the attribute names of a raw start tag as written, in
// order. It follows the tokenizer's rules for where names and values end.
func attrNames(raw []byte) []string {
	pos := 1
	for pos < len(raw) && !isTagSpace(raw[pos]) && raw[pos] != '/' && raw[pos] != '>' {
		pos++
	}

	var names []string
	for pos < len(raw) {
		for pos < len(raw) && isTagSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] == '>' {
			break
		}

		start := pos
		for pos < len(raw) {
			c := raw[pos]
			if isTagSpace(c) || c == '/' || c == '>' || (c == '=' && pos > start) {
				break
			}
			pos++
		}
		if pos == start {
			// a lone slash
			pos++
			continue
		}
		names = append(names, string(raw[start:pos]))

		for pos < len(raw) && isTagSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] != '=' {
			continue
		}
		pos++
		for pos < len(raw) && isTagSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) {
			break
		}
		switch quote := raw[pos]; quote {
		case '>':
		case '"', '\'':
			pos++
			for pos < len(raw) && raw[pos] != quote {
				pos++
			}
			pos++
		default:
			for pos < len(raw) && !isTagSpace(raw[pos]) && raw[pos] != '>' {
				pos++
			}
		}
	}
	return names
}

func isTagSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f':
		return true
	}
	return false
}
