package partials

import (
	"sort"

	"github.com/goliatone/go-partials/pkg/node"
)

// Definition is one overload of a partial: its declared parameters and the
// unexpanded body. Stored definitions are never mutated; resolution works on
// a clone of Body.
type Definition struct {
	Params []Param
	Body   node.Content
}

// NewDefinition builds a definition from a `partial` node carrying content.
func NewDefinition(n *node.Node) Definition {
	return Definition{
		Params: MakeParams(n.Attrs),
		Body:   n.Content,
	}
}

// Store keeps every overload registered under a name, in registration order.
// It is append-only and scoped to one session.
type Store struct {
	overloads map[string][]Definition
	count     int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{overloads: make(map[string][]Definition)}
}

// Register appends def to the overloads of name. Earlier overloads are kept.
func (s *Store) Register(name string, def Definition) {
	if s.overloads == nil {
		s.overloads = make(map[string][]Definition)
	}
	s.overloads[name] = append(s.overloads[name], def)
	s.count++
}

// Overloads returns the definitions registered under name, oldest first.
func (s *Store) Overloads(name string) ([]Definition, bool) {
	if s == nil {
		return nil, false
	}
	defs, ok := s.overloads[name]
	return defs, ok
}

// Has reports whether name has at least one overload.
func (s *Store) Has(name string) bool {
	_, ok := s.Overloads(name)
	return ok
}

// Names lists the registered partial names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.overloads))
	for name := range s.overloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of registered definitions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}
