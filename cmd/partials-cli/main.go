// partials-cli expands <partial> elements in an HTML, markdown or JSON tree
// document and writes the result.
//
// Settings are read from partials.yaml (or .yml, .json, .jsonc) next to the
// input when present, or from --config. Flags override the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	partials "github.com/goliatone/go-partials"
	"github.com/goliatone/go-partials/pkg/config"
	"github.com/goliatone/go-partials/pkg/pipeline"
	"github.com/goliatone/go-partials/pkg/render/layout"
	"github.com/goliatone/go-partials/pkg/sanitize"
	"github.com/goliatone/go-partials/pkg/source"
)

const httpTimeout = 30 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath     string
	output         string
	delimiters     []string
	openDelimiter  string
	closeDelimiter string
	libraries      []string
	renderer       string
	format         string
	sanitize       string
	layoutDir      string
	layoutName     string
	maxDepth       int
	verbose        bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("partials-cli", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "configuration file (default: partials.yaml next to the input)")
	flagSet.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flagSet.StringSliceVar(&opts.delimiters, "delimiters", nil, "placeholder delimiters as open,close (default {{,}})")
	flagSet.StringVar(&opts.openDelimiter, "open-delimiter", "", "opening placeholder delimiter, may contain commas")
	flagSet.StringVar(&opts.closeDelimiter, "close-delimiter", "", "closing placeholder delimiter, may contain commas")
	flagSet.StringArrayVar(&opts.libraries, "library", nil, "document whose definitions are loaded first (repeatable)")
	flagSet.StringVar(&opts.renderer, "renderer", "", "output renderer: html or json")
	flagSet.StringVar(&opts.format, "format", "", "input format: html, markdown or json (default: from extension)")
	flagSet.StringVar(&opts.sanitize, "sanitize", "", "sanitize policy: none, ugc or strict")
	flagSet.StringVar(&opts.layoutDir, "layout-dir", "", "directory holding pongo2 layouts (default: embedded layouts)")
	flagSet.StringVar(&opts.layoutName, "layout", "", "layout to wrap the output in")
	flagSet.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting of references inside expansions")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug records to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet, stderr)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return errors.New("input document is required (use - for stdin)")
	}
	if len(rest) > 1 {
		return fmt.Errorf("unexpected argument: %s", rest[1])
	}
	input := rest[0]

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(opts.configPath, input)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		logger.Debug("configuration loaded", "path", cfg.Source)
	}
	if err := mergeFlags(&cfg, flagSet, opts); err != nil {
		return err
	}

	pipelineOptions, err := buildPipelineOptions(cfg, logger)
	if err != nil {
		return err
	}
	gen := pipeline.New(pipelineOptions...)

	req, err := buildRequest(ctx, input, opts.format, stdin)
	if err != nil {
		return err
	}
	req.Renderer = cfg.Renderer

	output, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := stdout.Write(output)
		return err
	}
	if err := os.WriteFile(opts.output, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", "path", opts.output, "bytes", len(output))
	return nil
}

func loadConfig(path, input string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	dir := "."
	if input != "-" && !isURL(input) {
		dir = filepath.Dir(input)
	}
	cfg, _, err := config.Discover(dir)
	return cfg, err
}

func mergeFlags(cfg *config.Config, flagSet *pflag.FlagSet, opts options) error {
	if flagSet.Changed("delimiters") {
		cfg.Delimiters = opts.delimiters
	}
	if flagSet.Changed("open-delimiter") || flagSet.Changed("close-delimiter") {
		delims, err := cfg.PlaceholderDelimiters()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if flagSet.Changed("open-delimiter") {
			delims.Opening = opts.openDelimiter
		}
		if flagSet.Changed("close-delimiter") {
			delims.Closing = opts.closeDelimiter
		}
		cfg.Delimiters = []string{delims.Opening, delims.Closing}
	}
	if flagSet.Changed("library") {
		cfg.Libraries = append(cfg.Libraries, opts.libraries...)
	}
	if flagSet.Changed("renderer") {
		cfg.Renderer = strings.ToLower(strings.TrimSpace(opts.renderer))
	}
	if flagSet.Changed("sanitize") {
		cfg.Sanitize = strings.ToLower(strings.TrimSpace(opts.sanitize))
	}
	if flagSet.Changed("layout-dir") {
		cfg.Layout.Dir = opts.layoutDir
	}
	if flagSet.Changed("layout") {
		cfg.Layout.Name = strings.TrimSpace(opts.layoutName)
	}
	if flagSet.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	return cfg.Validate()
}

func buildPipelineOptions(cfg config.Config, logger *slog.Logger) ([]pipeline.Option, error) {
	delims, err := cfg.PlaceholderDelimiters()
	if err != nil {
		return nil, err
	}

	processorOptions := []partials.Option{
		partials.WithDelimiters(delims.Opening, delims.Closing),
		partials.WithGlobals(cfg.Globals),
	}
	if cfg.MaxDepth > 0 {
		processorOptions = append(processorOptions, partials.WithMaxDepth(cfg.MaxDepth))
	}

	out := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithLoader(partials.NewLoader(source.WithHTTPFallback(httpTimeout))),
		pipeline.WithProcessorOptions(processorOptions...),
	}

	for _, lib := range cfg.Libraries {
		src, err := source.Parse(lib)
		if err != nil {
			return nil, err
		}
		out = append(out, pipeline.WithLibraries(src))
	}

	sanitizer, err := sanitize.Lookup(cfg.Sanitize)
	if err != nil {
		return nil, err
	}
	if sanitizer != nil {
		out = append(out, pipeline.WithSanitizer(sanitizer))
	}

	if cfg.Layout.Enabled() {
		engineOptions := []layout.Option{layout.WithFS(partials.EmbeddedLayouts())}
		if cfg.Layout.Dir != "" {
			engineOptions = []layout.Option{layout.WithBaseDir(cfg.Layout.Dir)}
		}
		engine, err := layout.New(engineOptions...)
		if err != nil {
			return nil, err
		}
		out = append(out, pipeline.WithLayout(engine, cfg.Layout.Name, cfg.Layout.Data))
	}
	return out, nil
}

func buildRequest(ctx context.Context, input, format string, stdin io.Reader) (pipeline.Request, error) {
	var src source.Source
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return pipeline.Request{}, fmt.Errorf("read stdin: %w", err)
		}
		src = source.FromBytes("stdin", data)
		if format == "" {
			format = string(source.FormatHTML)
		}
	} else {
		parsed, err := source.Parse(input)
		if err != nil {
			return pipeline.Request{}, err
		}
		src = parsed
	}

	if format == "" {
		return pipeline.Request{Source: src}, nil
	}

	f, err := parseFormat(format)
	if err != nil {
		return pipeline.Request{}, err
	}
	doc, err := partials.NewLoader(source.WithHTTPFallback(httpTimeout)).Load(ctx, src)
	if err != nil {
		return pipeline.Request{}, err
	}
	doc, err = source.NewDocumentWithFormat(doc.Source(), doc.Raw(), f)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{Document: &doc}, nil
}

func parseFormat(raw string) (source.Format, error) {
	switch f := source.Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case source.FormatHTML, source.FormatMarkdown, source.FormatJSON:
		return f, nil
	case "md":
		return source.FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `partials-cli expands <partial> definitions and references in a document.

A <partial name="..."> element with content defines a fragment; its other
attributes declare parameters with optional defaults. An empty element with
the same name is replaced by the fragment, with {{param}} placeholders
filled from its attributes.

Usage:
  partials-cli [flags] <input>

Examples:
  # Expand a page and print it
  partials-cli page.html

  # Load shared definitions first and write a file
  partials-cli --library partials/cards.html -o out/index.html index.html

  # Markdown input wrapped in the embedded page layout
  partials-cli --layout page README.md

  # Read from stdin with custom delimiters
  cat page.html | partials-cli --delimiters '[[,]]' -

  # --delimiters splits on commas; set each side on its own instead
  partials-cli --open-delimiter '{,' --close-delimiter ',}' page.html

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
