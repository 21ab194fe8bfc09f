package formstate

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// Manager owns the Forms of a service and keeps them in sync with the
// current rule declarations.
type Manager struct {
	mu     sync.RWMutex
	forms  map[string]*Form
	engine *validator.Engine
	store  Store
	opts   []FormOption
	logger *slog.Logger
}

// NewManager creates an empty manager. opts are passed to every Form it creates.
func NewManager(engine *validator.Engine, store Store, log *slog.Logger, opts ...FormOption) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if engine == nil {
		engine = validator.New()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{
		forms:  make(map[string]*Form),
		engine: engine,
		store:  store,
		opts:   append([]FormOption{WithLogger(log)}, opts...),
		logger: log,
	}
}

// Form returns the form registered under name.
func (m *Manager) Form(name string) (*Form, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[name]
	return f, ok
}

// Names returns the registered form names in lexical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.forms))
	for name := range m.forms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply installs sets as the complete collection of forms. Existing forms
// get their rule set swapped in place, new names get a Form, and forms
// missing from sets are dropped. Published states are not touched.
func (m *Manager) Apply(ctx context.Context, sets map[string]*rules.RuleSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, rs := range sets {
		if rs.Len() == 0 {
			m.logger.WarnContext(ctx, "form has an empty rule set", logger.Form(name))
		}
		m.engine.Warm(ctx, rs)

		if f, ok := m.forms[name]; ok {
			f.SetRules(rs)
			continue
		}
		m.forms[name] = NewForm(name, rs, m.engine, m.store, m.opts...)
	}

	for name := range m.forms {
		if _, ok := sets[name]; !ok {
			delete(m.forms, name)
			m.logger.InfoContext(ctx, "form removed", logger.Form(name))
		}
	}
}
