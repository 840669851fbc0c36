package rules

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/localrivet/mcprules/config"
)

// Option is a resolver configuration option.
type Option func(*Resolver)

// WithSource sets where the resolver reads the environment and descriptor file.
func WithSource(src config.Source) Option {
	return func(r *Resolver) {
		r.source = src
	}
}

// WithLogger sets the resolver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithRuleSpecs replaces the default rule set.
func WithRuleSpecs(specs []RuleSpec) Option {
	return func(r *Resolver) {
		r.specs = specs
	}
}

// WithLoadOptions passes options through to config.Load.
func WithLoadOptions(opts ...config.LoadOption) Option {
	return func(r *Resolver) {
		r.loadOpts = append(r.loadOpts, opts...)
	}
}

// Resolver loads the descriptor file and composes the editor configuration.
// Each Resolve reads the file once; the last document is kept for
// ServersByType.
type Resolver struct {
	source   config.Source
	logger   *slog.Logger
	specs    []RuleSpec
	loadOpts []config.LoadOption

	mu      sync.RWMutex
	doc     config.Document
	lastErr error
}

// NewResolver creates a resolver reading from the OS by default.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		source: config.OSSource{},
		specs:  DefaultRuleSpecs(),
		doc:    config.DefaultDocument(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Resolve loads the descriptor, falling back to the default document, and
// composes the configuration. It never fails.
func (r *Resolver) Resolve() Configuration {
	logger := r.logger.With("resolution", uuid.NewString())

	result := config.Load(r.source, r.loadOpts...)
	doc := result.OrDefault(logger)

	r.mu.Lock()
	r.doc = doc
	r.lastErr = result.Err
	r.mu.Unlock()

	cfg := Compose(doc, r.specs)
	logger.Debug("resolved mcp rules",
		"path", result.Path,
		"servers", len(cfg.MCP.Config.Servers),
		"rules", len(cfg.Rules),
		"inert_rules", countInert(cfg.Rules),
	)
	return cfg
}

// Document returns a copy of the most recently loaded document.
func (r *Resolver) Document() config.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc := r.doc
	doc.MCPConfig.Servers = r.doc.AllServers()
	return doc
}

// LastError returns why the most recent load fell back to defaults, or nil.
func (r *Resolver) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// ServersByType filters the most recently loaded document by provider.
func (r *Resolver) ServersByType(provider string) []config.ServerDescriptor {
	return config.GetServersByType(r.Document(), provider)
}

func countInert(rules []Rule) int {
	n := 0
	for _, rule := range rules {
		if len(rule.MCP.Config.Servers) == 0 {
			n++
		}
	}
	return n
}
