package partials

import (
	"github.com/goliatone/go-partials/pkg/node"
	"github.com/goliatone/go-partials/pkg/placeholder"
)

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	// Overload is the index of the selected definition among the overloads
	// registered for the name.
	Overload int
	Binding  placeholder.Binding
	// Content is the substituted copy of the selected body.
	Content node.Content
}

// Resolve selects the overload for a reference named name with the given
// arguments, binds parameters, and returns a substituted clone of the body.
// globals fill names the binding leaves unbound.
func Resolve(store *Store, name string, args []Param, expander placeholder.Expander, globals placeholder.Binding) (Resolution, error) {
	overloads, ok := store.Overloads(name)
	if !ok {
		return Resolution{}, &UndefinedPartialError{Name: name}
	}

	def, idx, ok := Select(overloads, args)
	if !ok {
		return Resolution{}, &UndefinedPartialError{Name: name, Overloads: len(overloads)}
	}

	binding := Bind(def.Params, args)
	for key, value := range globals {
		if _, bound := binding.Lookup(key); !bound {
			binding.Set(key, value)
		}
	}

	content, err := Substitute(def.Body.Clone(), binding, expander)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Overload: idx, Binding: binding, Content: content}, nil
}

// Substitute expands placeholders in every text item and attribute value of
// content.
func Substitute(content node.Content, binding placeholder.Binding, expander placeholder.Expander) (node.Content, error) {
	return node.Walk(content, func(entry node.Item) (node.Item, error) {
		switch v := entry.(type) {
		case node.Text:
			return node.Text(expander.Expand(string(v), binding)), nil
		case *node.Node:
			if v == nil || v.Attrs == nil {
				return v, nil
			}
			copied := *v
			copied.Attrs = make(node.Attrs, len(v.Attrs))
			for idx, attr := range v.Attrs {
				copied.Attrs[idx] = node.Attr{Key: attr.Key, Value: expander.Expand(attr.Value, binding)}
			}
			return &copied, nil
		}
		return entry, nil
	})
}
