package rulestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
)

// ReloadFunc is notified with the complete collection after every successful reload.
type ReloadFunc func(ctx context.Context, sets map[string]*rules.RuleSet)

// Registry holds the rule set of every form loaded from a Source.
type Registry struct {
	source    Source
	parseOpts []rules.ParseOption
	logger    *slog.Logger

	current atomic.Pointer[map[string]*rules.RuleSet]

	mu        sync.Mutex
	listeners []ReloadFunc
}

// Option configures a Registry.
type Option func(*Registry)

// WithParseOptions passes options to rules.Parse, e.g. rules.WithFuncs.
func WithParseOptions(opts ...rules.ParseOption) Option {
	return func(r *Registry) {
		r.parseOpts = append(r.parseOpts, opts...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry; call Reload to populate it.
func NewRegistry(source Source, opts ...Option) *Registry {
	r := &Registry{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	empty := map[string]*rules.RuleSet{}
	r.current.Store(&empty)
	return r
}

// OnReload registers fn to be called after every successful reload.
func (r *Registry) OnReload(fn ReloadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Reload reads every document from the source and replaces the collection.
// Any source or decode error aborts the reload and keeps the previous one.
func (r *Registry) Reload(ctx context.Context) error {
	start := time.Now()

	docs, err := r.source.Documents(ctx)
	if err != nil {
		return err
	}

	sets := make(map[string]*rules.RuleSet, len(docs))
	for _, doc := range docs {
		decls, err := rules.Parse(doc.Data, r.parseOpts...)
		if err != nil {
			return fmt.Errorf("%w: form %q: %w", ErrInvalidRules, doc.Name, err)
		}
		sets[doc.Name] = rules.Normalize(decls)
	}

	// Listeners run under mu so two concurrent reloads cannot apply out of order.
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.Store(&sets)
	for _, fn := range r.listeners {
		fn(ctx, maps.Clone(sets))
	}

	r.logger.InfoContext(ctx, "rule declarations loaded",
		slog.Int("forms", len(sets)),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// Get returns the rule set of form name.
func (r *Registry) Get(name string) (*rules.RuleSet, bool) {
	rs, ok := (*r.current.Load())[name]
	return rs, ok
}

// Names returns the loaded form names in lexical order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(*r.current.Load()))
}

// Run reloads every interval until ctx is done. Failed reloads are logged.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := r.Reload(ctx); err != nil && ctx.Err() == nil {
				r.logger.ErrorContext(ctx, "failed to reload rule declarations", logger.Error(err))
			}
		}
	}
}
