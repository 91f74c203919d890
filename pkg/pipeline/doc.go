// Package pipeline wires the loader -> parser -> partials -> renderer ->
// sanitizer -> layout sequence behind a single Generate call.
package pipeline
