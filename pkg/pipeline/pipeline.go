package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-partials/internal/source/loader"
	"github.com/goliatone/go-partials/pkg/markup"
	"github.com/goliatone/go-partials/pkg/node"
	"github.com/goliatone/go-partials/pkg/partials"
	"github.com/goliatone/go-partials/pkg/render"
	"github.com/goliatone/go-partials/pkg/render/layout"
	"github.com/goliatone/go-partials/pkg/sanitize"
	"github.com/goliatone/go-partials/pkg/source"
)

const defaultRendererName = "html"

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithLoader injects a custom document loader.
func WithLoader(loader source.Loader) Option {
	return func(p *Pipeline) {
		p.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(p *Pipeline) {
		p.defaultRenderer = name
	}
}

// WithProcessorOptions forwards options to the partials processor.
func WithProcessorOptions(options ...partials.Option) Option {
	return func(p *Pipeline) {
		p.processorOptions = append(p.processorOptions, options...)
	}
}

// WithLayout wraps rendered output in the named layout. data is merged over
// the theme values exposed to the template.
func WithLayout(engine *layout.Engine, name string, data map[string]any) Option {
	return func(p *Pipeline) {
		p.layout = engine
		p.layoutName = name
		p.layoutData = data
	}
}

// WithSanitizer cleans HTML output before the layout runs. Pass nil to
// disable sanitising.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(p *Pipeline) {
		p.sanitizer = s
	}
}

// WithTheme exposes theme tokens as placeholder globals and theme metadata to
// the layout under the `theme` key.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(p *Pipeline) {
		p.theme = cfg
	}
}

// WithLibraries registers documents whose definitions are available to every
// request. Their own output is discarded.
func WithLibraries(sources ...source.Source) Option {
	return func(p *Pipeline) {
		p.libraries = append(p.libraries, sources...)
	}
}

// WithLogger sets the logger for pipeline and processor debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Pipeline coordinates a document from its source to rendered bytes.
type Pipeline struct {
	loader           source.Loader
	registry         *render.Registry
	defaultRenderer  string
	processorOptions []partials.Option
	processor        *partials.Processor
	layout           *layout.Engine
	layoutName       string
	layoutData       map[string]any
	sanitizer        sanitize.Sanitizer
	theme            *theme.RendererConfig
	libraries        []source.Source
	logger           *slog.Logger
	initialiseErr    error
}

// New constructs a Pipeline applying any provided options. Missing
// dependencies get the built-in implementations: a file/fs loader, the html
// and json renderers and a processor with default delimiters.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

// Processor returns the configured partials processor.
func (p *Pipeline) Processor() *partials.Processor {
	return p.processor
}

// Request describes one document to generate.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source source.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *source.Document

	// Libraries are processed before the document in the same session, after
	// any libraries configured on the pipeline.
	Libraries []source.Source

	// Renderer names the output renderer. Empty selects the default.
	Renderer string
}

// Generate loads, expands and renders the requested document.
func (p *Pipeline) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pipeline: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := p.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	doc, err := p.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	tree, err := ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	session := p.processor.Session()
	libraries := append(append([]source.Source(nil), p.libraries...), req.Libraries...)
	for _, lib := range libraries {
		if err := p.loadLibrary(ctx, session, lib); err != nil {
			return nil, err
		}
	}

	expanded, err := session.Process(tree)
	if err != nil {
		return nil, fmt.Errorf("pipeline: expand %s: %w", doc.Location(), err)
	}
	p.logger.Debug("document expanded",
		"location", doc.Location(),
		"format", doc.Format(),
		"definitions", session.Store().Len(),
	)

	output, err := renderer.Render(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("pipeline: render output: %w", err)
	}

	if p.sanitizer != nil && renderer.Name() == defaultRendererName {
		output = p.sanitizer.Sanitize(output)
	}

	if p.layout != nil && p.layoutName != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		output, err = p.layout.Wrap(p.layoutName, output, p.layoutContext())
		if err != nil {
			return nil, fmt.Errorf("pipeline: apply layout: %w", err)
		}
	}
	return output, nil
}

// ParseDocument converts a loaded document into a tree according to its
// format.
func ParseDocument(doc source.Document) (node.Content, error) {
	raw := doc.Raw()
	switch doc.Format() {
	case source.FormatMarkdown:
		return markup.ParseMarkdown(raw)
	case source.FormatJSON:
		var content node.Content
		if len(bytes.TrimSpace(raw)) == 0 {
			return node.Content{}, nil
		}
		if err := json.Unmarshal(raw, &content); err != nil {
			return nil, fmt.Errorf("parse json tree %s: %w", doc.Location(), err)
		}
		if content == nil {
			content = node.Content{}
		}
		return content, nil
	default:
		return markup.Parse(bytes.NewReader(raw))
	}
}

func (p *Pipeline) loadLibrary(ctx context.Context, session *partials.Session, src source.Source) error {
	if src == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := p.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("pipeline: load library: %w", err)
	}
	tree, err := ParseDocument(doc)
	if err != nil {
		return fmt.Errorf("pipeline: library: %w", err)
	}
	before := session.Store().Len()
	if _, err := session.Process(tree); err != nil {
		return fmt.Errorf("pipeline: expand library %s: %w", doc.Location(), err)
	}
	p.logger.Debug("library loaded",
		"location", doc.Location(),
		"definitions", session.Store().Len()-before,
	)
	return nil
}

func (p *Pipeline) resolveDocument(ctx context.Context, req Request) (source.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return source.Document{}, errors.New("pipeline: source or document is required")
	}
	doc, err := p.loader.Load(ctx, req.Source)
	if err != nil {
		return source.Document{}, fmt.Errorf("pipeline: load document: %w", err)
	}
	return doc, nil
}

func (p *Pipeline) rendererFor(name string) (render.Renderer, error) {
	if p.registry == nil {
		return nil, errors.New("pipeline: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = p.defaultRenderer
	}

	if target != "" {
		renderer, err := p.registry.Lookup(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	formats := p.registry.Formats()
	if len(formats) == 0 {
		return nil, errors.New("pipeline: no output formats registered")
	}
	return p.registry.Lookup(formats[0])
}

func (p *Pipeline) layoutContext() map[string]any {
	data := make(map[string]any, len(p.layoutData)+1)
	if p.theme != nil {
		data["theme"] = map[string]any{
			"name":    p.theme.Theme,
			"variant": p.theme.Variant,
			"tokens":  copyStringMap(p.theme.Tokens),
			"cssVars": copyStringMap(p.theme.CSSVars),
		}
	}
	for key, value := range p.layoutData {
		data[key] = value
	}
	return data
}

func (p *Pipeline) applyDefaults() {
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.loader == nil {
		p.loader = internalLoader.New(source.NewLoaderOptions())
	}
	if p.registry == nil {
		p.registry = render.NewDefaultRegistry()
	}
	if p.defaultRenderer == "" {
		p.defaultRenderer = defaultRendererName
	}

	options := make([]partials.Option, 0, len(p.processorOptions)+2)
	options = append(options, partials.WithLogger(p.logger))
	if p.theme != nil && len(p.theme.Tokens) > 0 {
		options = append(options, partials.WithGlobals(p.theme.Tokens))
	}
	options = append(options, p.processorOptions...)

	processor, err := partials.New(options...)
	if err != nil {
		p.initialiseErr = fmt.Errorf("pipeline: %w", err)
		return
	}
	p.processor = processor
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
