package partials

import (
	"context"
	"fmt"

	"github.com/goliatone/go-partials/pkg/markup"
	"github.com/goliatone/go-partials/pkg/node"
	pkgpartials "github.com/goliatone/go-partials/pkg/partials"
	"github.com/goliatone/go-partials/pkg/pipeline"
	"github.com/goliatone/go-partials/pkg/source"
)

// Option configures a processor; alias exported via the root package for
// convenience.
type Option = pkgpartials.Option

// Processor expands partials in parsed trees.
type Processor = pkgpartials.Processor

// Content is a parsed document tree.
type Content = node.Content

// Processor options re-exported from pkg/partials.
var (
	WithDelimiters = pkgpartials.WithDelimiters
	WithGlobals    = pkgpartials.WithGlobals
	WithMaxDepth   = pkgpartials.WithMaxDepth
	WithLogger     = pkgpartials.WithLogger
	WithTag        = pkgpartials.WithTag
)

// Sentinel errors re-exported for errors.Is checks.
var (
	ErrUndefinedPartial = pkgpartials.ErrUndefinedPartial
	ErrExpansionLimit   = pkgpartials.ErrExpansionLimit
)

// NewProcessor exposes the processor constructor from the top-level module.
func NewProcessor(options ...Option) (*Processor, error) {
	return pkgpartials.New(options...)
}

// NewPipeline exposes the pipeline constructor from the top-level module.
func NewPipeline(options ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(options...)
}

// Process expands every partial in content with a fresh processor.
func Process(content Content, options ...Option) (Content, error) {
	proc, err := pkgpartials.New(options...)
	if err != nil {
		return nil, err
	}
	return proc.Process(content)
}

// ProcessString parses an HTML fragment, expands its partials and renders
// the result back to HTML.
func ProcessString(src string, options ...Option) (string, error) {
	content, err := markup.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("partials: parse: %w", err)
	}
	expanded, err := Process(content, options...)
	if err != nil {
		return "", err
	}
	return markup.RenderString(expanded)
}

// GenerateHTML loads src, expands its partials and renders HTML. It is the
// simplest entry point for callers that just want a page.
func GenerateHTML(ctx context.Context, src source.Source, options ...pipeline.Option) ([]byte, error) {
	return pipeline.New(options...).Generate(ctx, pipeline.Request{
		Source:   src,
		Renderer: "html",
	})
}
