// Package node defines the document tree the partials engine operates on: tag
// nodes with ordered attributes and mixed text/node content, plus the
// depth-first walker used to rebuild trees.
package node

// Item is a single entry of a Content sequence. It is either Text or *Node.
type Item interface {
	item()
}

// Text is raw markup text. It is rendered verbatim, so entities and comments
// survive a parse/render round trip unchanged.
type Text string

func (Text) item() {}

// Node is a tag with optional attributes and content. An empty Tag marks a
// wrapper that renders only its content.
type Node struct {
	Tag     string
	Attrs   Attrs
	Content Content
}

func (*Node) item() {}

// Content is an ordered sequence of text and nodes. A nil Content means the
// content is absent (self-closing tags); a non-nil empty Content means it is
// present but empty.
type Content []Item

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs keeps attributes in source order. A nil Attrs means the node carries
// no attributes at all.
type Attrs []Attr

// Get returns the value for key and whether it is present.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set replaces the value of key or appends it, returning the updated slice.
func (a Attrs) Set(key, value string) Attrs {
	for idx := range a {
		if a[idx].Key == key {
			a[idx].Value = value
			return a
		}
	}
	return append(a, Attr{Key: key, Value: value})
}

// Clone copies the attributes, preserving nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Clone deep-copies the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Tag:     n.Tag,
		Attrs:   n.Attrs.Clone(),
		Content: n.Content.Clone(),
	}
}

// Clone deep-copies the content, preserving the nil/empty distinction.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	out := make(Content, len(c))
	for idx, entry := range c {
		switch v := entry.(type) {
		case *Node:
			out[idx] = v.Clone()
		default:
			out[idx] = v
		}
	}
	return out
}

// Blank reports whether the content is absent, empty, or a single empty text.
func (c Content) Blank() bool {
	if len(c) == 0 {
		return true
	}
	if len(c) == 1 {
		if text, ok := c[0].(Text); ok && text == "" {
			return true
		}
	}
	return false
}

// Element is a convenience constructor used heavily in tests and fixtures.
func Element(tag string, attrs Attrs, content ...Item) *Node {
	n := &Node{Tag: tag, Attrs: attrs}
	if content != nil {
		n.Content = Content(content)
	}
	return n
}
