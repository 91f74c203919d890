// Package markup converts between markup text and node trees. Parsing keeps
// text exactly as written and honours self-closing syntax on any element, so
// `<partial name="x" />` yields a node without content.
package markup
