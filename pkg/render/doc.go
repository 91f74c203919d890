// Package render turns processed node trees into output bytes and keeps a
// registry of named renderers.
package render
