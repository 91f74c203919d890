package partials

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-partials/pkg/node"
	"github.com/goliatone/go-partials/pkg/placeholder"
)

// Processor holds the immutable configuration for expanding partials. It is
// safe for concurrent use; each Process call or Session owns its own store.
type Processor struct {
	expander placeholder.Expander
	tag      string
	globals  placeholder.Binding
	maxDepth int
	logger   *slog.Logger
}

// New validates the options and returns a Processor.
func New(options ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	expander, err := placeholder.NewExpander(cfg.delims)
	if err != nil {
		return nil, fmt.Errorf("partials: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = discardLogger()
	}

	return &Processor{
		expander: expander,
		tag:      cfg.tag,
		globals:  cfg.globals,
		maxDepth: cfg.maxDepth,
		logger:   logger,
	}, nil
}

// Delimiters returns the configured placeholder delimiters.
func (p *Processor) Delimiters() placeholder.Delimiters {
	return p.expander.Delimiters()
}

// Process expands every partial in content using a fresh store. The input is
// not modified. On error no content is returned.
func (p *Processor) Process(content node.Content) (node.Content, error) {
	return p.Session().Process(content)
}

// Session starts a run whose store persists across Process calls, so
// definitions from library documents can be used by a later document.
func (p *Processor) Session() *Session {
	return &Session{proc: p, store: NewStore()}
}

// Session is one document-processing run. It is not safe for concurrent use.
type Session struct {
	proc  *Processor
	store *Store
	depth int
}

// Store exposes the definitions registered so far.
func (s *Session) Store() *Store {
	return s.store
}

// Process walks content once, registering definitions and replacing
// references in document order. The expansion of a reference is processed
// before the walk moves on to the next sibling.
func (s *Session) Process(content node.Content) (node.Content, error) {
	return node.Match(content, s.proc.tag, s.visit)
}

func (s *Session) visit(n *node.Node) (node.Item, error) {
	if n.Attrs == nil {
		return n, nil
	}
	name, ok := n.Attrs.Get(NameAttr)
	if !ok || name == "" {
		return n, nil
	}

	if n.Content.Blank() {
		if n.Content == nil && !s.store.Has(name) {
			return nil, &UndefinedPartialError{Name: name}
		}
		return s.reference(name, n)
	}

	s.define(name, n)
	return &node.Node{Content: node.Content{}}, nil
}

func (s *Session) define(name string, n *node.Node) {
	def := NewDefinition(n)
	s.store.Register(name, def)

	overloads, _ := s.store.Overloads(name)
	s.proc.logger.Debug("partial registered",
		"name", name,
		"params", paramNames(def.Params),
		"overloads", len(overloads),
	)
}

func (s *Session) reference(name string, n *node.Node) (node.Item, error) {
	if s.proc.maxDepth > 0 && s.depth >= s.proc.maxDepth {
		return nil, fmt.Errorf("%w: %q nested %d references deep", ErrExpansionLimit, name, s.depth)
	}

	args := MakeParams(n.Attrs)
	res, err := Resolve(s.store, name, args, s.proc.expander, s.proc.globals)
	if err != nil {
		return nil, err
	}

	s.proc.logger.Debug("partial resolved",
		"name", name,
		"overload", res.Overload,
		"args", paramNames(args),
		"depth", s.depth,
	)

	s.depth++
	expanded, err := node.Match(res.Content, s.proc.tag, s.visit)
	s.depth--
	if err != nil {
		return nil, err
	}
	return node.Done(&node.Node{Content: expanded}), nil
}
