// Package partials expands named, reusable fragments of a node tree.
//
// A `partial` element with content defines a fragment; its attributes other
// than `name` declare parameters, where an empty value means the parameter
// has no default. A `partial` element without content references the most
// recently defined overload whose parameters the call can satisfy, and is
// replaced by a copy of that body with placeholders substituted:
//
//	<partial name="greet" who="World">Hello {{who}}!</partial>
//	<partial name="greet" />              -> Hello World!
//	<partial name="greet" who="Ada" />    -> Hello Ada!
//
// Definitions only see what appeared before them in document order, and the
// store is discarded when a session ends.
package partials
