// Package partials is the top-level entry point for go-partials: reusable,
// parameterised HTML fragments declared with <partial name="..."> elements
// and expanded in place wherever the same element is referenced.
//
// A definition is a partial element with content. Its attributes other than
// name declare parameters, and an attribute value is the parameter default:
//
//	<partial name="card" title="Untitled">
//	  <h2>{{title}}</h2><p>{{body}}</p>
//	</partial>
//
// A reference is a partial element with no content. Its attributes are the
// call arguments:
//
//	<partial name="card" title="Hello" body="World"></partial>
//
// Names may be overloaded; the most recently defined compatible overload wins.
// Use Process or ProcessString for one-off documents, or NewPipeline to load,
// render, sanitise and wrap documents in layouts.
package partials
