package partials

import (
	"github.com/goliatone/go-partials/pkg/node"
)

// NameAttr is the reserved attribute naming a partial.
const NameAttr = "name"

// Param is a declared parameter or a call argument. An empty Value means the
// parameter has no default (on a definition) or no value (on a reference).
type Param struct {
	Name  string
	Value string
}

// HasValue reports whether the parameter carries a value.
func (p Param) HasValue() bool {
	return p.Value != ""
}

// MakeParams converts node attributes into parameters, skipping the reserved
// name attribute and keeping attribute order.
func MakeParams(attrs node.Attrs) []Param {
	params := make([]Param, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Key == NameAttr {
			continue
		}
		params = append(params, Param{Name: attr.Key, Value: attr.Value})
	}
	return params
}

func paramNames(params []Param) []string {
	names := make([]string, len(params))
	for idx, p := range params {
		names[idx] = p.Name
	}
	return names
}
