package node

// WalkFunc transforms a single item. Returning a nil Item drops the entry from
// the rebuilt content.
type WalkFunc func(Item) (Item, error)

// Done wraps an item a WalkFunc has already finished with. Walk keeps the
// wrapped item as is and does not descend into its content.
func Done(item Item) Item {
	if item == nil {
		return nil
	}
	return done{inner: item}
}

type done struct {
	inner Item
}

func (done) item() {}

// Walk visits every item of content depth-first, in document order, and
// returns the rebuilt tree. The callback runs on a node before its children,
// and the walk descends into the content of whatever node the callback
// returned, so replacements are visited too, unless the callback wrapped it
// with Done. The input tree is never mutated:
// nodes with content are shallow-copied before their children are replaced.
// The first error aborts the walk.
func Walk(content Content, fn WalkFunc) (Content, error) {
	if content == nil {
		return nil, nil
	}

	out := make(Content, 0, len(content))
	for _, entry := range content {
		next, err := fn(entry)
		if err != nil {
			return nil, err
		}
		if next == nil {
			continue
		}
		if d, ok := next.(done); ok {
			out = append(out, d.inner)
			continue
		}

		if n, ok := next.(*Node); ok {
			if n == nil {
				continue
			}
			if n.Content != nil {
				children, err := Walk(n.Content, fn)
				if err != nil {
					return nil, err
				}
				copied := *n
				copied.Content = children
				next = &copied
			}
		}
		out = append(out, next)
	}
	return out, nil
}

// Match walks content and calls fn for every node whose tag equals tag. Other
// items pass through unchanged.
func Match(content Content, tag string, fn func(*Node) (Item, error)) (Content, error) {
	return Walk(content, func(entry Item) (Item, error) {
		n, ok := entry.(*Node)
		if !ok || n == nil || n.Tag != tag {
			return entry, nil
		}
		return fn(n)
	})
}
