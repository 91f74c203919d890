package partials

import (
	"github.com/goliatone/go-partials/pkg/placeholder"
)

// Bind merges the call arguments with the declared parameters of the selected
// definition.
//
// Without arguments every parameter binds to its default. Otherwise, for each
// declared parameter, every argument is bound under its own name, so
// arguments the definition does not declare are still available to the body.
// Once every argument is bound, each declared parameter that ends up without
// a value (missing or empty) falls back to its default, which means an empty
// argument cannot clear a default. A definition without parameters gets an
// empty binding.
func Bind(params []Param, args []Param) placeholder.Binding {
	binding := placeholder.Binding{}
	for _, p := range params {
		if len(args) == 0 {
			binding.Set(p.Name, p.Value)
			continue
		}

		for _, arg := range args {
			if p.Name == arg.Name {
				binding.Set(p.Name, arg.Value)
			} else {
				binding.Set(arg.Name, arg.Value)
			}
		}
	}

	for _, p := range params {
		if _, ok := binding.Lookup(p.Name); !ok {
			binding.Set(p.Name, p.Value)
		}
	}
	return binding
}
