package partials

import (
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-partials/pkg/placeholder"
)

// DefaultTag is the element name that marks partial definitions and
// references.
const DefaultTag = "partial"

// DefaultMaxDepth caps how deeply references may nest inside the expansions
// of other references.
const DefaultMaxDepth = 1000

// Option configures a Processor.
type Option func(*config)

type config struct {
	delims   placeholder.Delimiters
	tag      string
	globals  placeholder.Binding
	maxDepth int
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		delims:   placeholder.DefaultDelimiters(),
		tag:      DefaultTag,
		maxDepth: DefaultMaxDepth,
	}
}

// WithDelimiters sets the placeholder delimiters used by every substitution
// the processor performs.
func WithDelimiters(opening, closing string) Option {
	return func(cfg *config) {
		cfg.delims = placeholder.Delimiters{Opening: opening, Closing: closing}
	}
}

// WithTag overrides the reserved element name. Blank values are ignored.
func WithTag(tag string) Option {
	return func(cfg *config) {
		trimmed := strings.ToLower(strings.TrimSpace(tag))
		if trimmed == "" {
			return
		}
		cfg.tag = trimmed
	}
}

// WithGlobals seeds values for placeholders a reference leaves unbound.
// Globals never override arguments or defaults.
func WithGlobals(values map[string]string) Option {
	return func(cfg *config) {
		if len(values) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(placeholder.Binding, len(values))
		}
		for key, value := range values {
			cfg.globals.Set(strings.TrimSpace(key), value)
		}
	}
}

// WithMaxDepth caps how deeply a reference may sit inside the expansions of
// other references. Sibling references do not count against it. Zero or
// negative values disable the cap.
func WithMaxDepth(n int) Option {
	return func(cfg *config) {
		cfg.maxDepth = n
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
