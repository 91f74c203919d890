package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFormat matches every UnknownFormatError through errors.Is.
var ErrUnknownFormat = errors.New("render: unknown output format")

// UnknownFormatError reports an output format no renderer produces.
type UnknownFormatError struct {
	Format    string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("render: no renderer produces output format %q (none registered)", e.Format)
	}
	return fmt.Sprintf("render: no renderer produces output format %q (available: %s)",
		e.Format, strings.Join(e.Available, ", "))
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// Registry maps output format names (the renderer's Name) to renderers.
// Format names are matched case-insensitively.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Renderer),
	}
}

// NewDefaultRegistry returns a registry producing the html and json output
// formats.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(HTML{})
	r.MustRegister(JSON{})
	return r
}

// Register makes renderer the producer of the output format it names. A
// format can only have one renderer.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	format := normalizeFormat(renderer.Name())
	if format == "" {
		return fmt.Errorf("render: %T does not name an output format", renderer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.formats[format]; exists {
		return fmt.Errorf("render: output format %q is already produced by %T", format, existing)
	}

	r.formats[format] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Lookup returns the renderer producing format. Unknown formats yield an
// *UnknownFormatError listing the formats that are available.
func (r *Registry) Lookup(format string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.formats[normalizeFormat(format)]; ok {
		return renderer, nil
	}
	return nil, &UnknownFormatError{Format: format, Available: r.formatsLocked()}
}

// Formats returns the registered output format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formatsLocked()
}

func (r *Registry) formatsLocked() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
