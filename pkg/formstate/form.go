package formstate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// LookupFunc picks the message lookup for a request, typically from the
// language stored in ctx. A nil result keeps the engine's own lookup.
type LookupFunc func(ctx context.Context) validator.MessageLookup

// Form is the validation state of one named form: the rule set currently in
// effect plus the engine and store used to validate and publish sessions.
type Form struct {
	name   string
	rules  atomic.Pointer[rules.RuleSet]
	engine *validator.Engine
	store  Store
	lookup LookupFunc
	logger *slog.Logger
	now    func() time.Time
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithLookup localizes messages per request.
func WithLookup(fn LookupFunc) FormOption {
	return func(f *Form) {
		f.lookup = fn
	}
}

func WithLogger(l *slog.Logger) FormOption {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// NewForm creates a form. A nil store keeps states in memory.
func NewForm(name string, rs *rules.RuleSet, engine *validator.Engine, store Store, opts ...FormOption) *Form {
	if engine == nil {
		engine = validator.New()
	}
	if store == nil {
		store = NewMemoryStore()
	}

	f := &Form{
		name:   name,
		engine: engine,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.rules.Store(rs)
	return f
}

// NewSession returns a fresh session identifier.
func NewSession() string {
	return uuid.NewString()
}

func (f *Form) Name() string { return f.name }

// Rules returns the rule set in effect.
func (f *Form) Rules() *rules.RuleSet {
	return f.rules.Load()
}

// SetRules replaces the rule set. Validations already running keep the set
// they started with.
func (f *Form) SetRules(rs *rules.RuleSet) {
	f.rules.Store(rs)
}

// Validate validates data for session, marks the session as validated and
// publishes the resulting State.
func (f *Form) Validate(ctx context.Context, session string, data map[string]any) State {
	ctx = logger.WithFormScope(ctx, f.name, session)

	res := f.engineFor(ctx).Validate(ctx, f.rules.Load(), data)
	st := State{
		Form:      f.name,
		Session:   session,
		Errors:    res.Errors,
		Validated: true,
		UpdatedAt: f.now().UTC(),
	}
	f.publish(ctx, st)
	return st
}

// Revalidate re-runs validation for a session that has been validated
// before. For any other session it returns the unvalidated State and false
// without running the validator.
func (f *Form) Revalidate(ctx context.Context, session string, data map[string]any) (State, bool) {
	ctx = logger.WithFormScope(ctx, f.name, session)

	prev, err := f.store.Load(ctx, f.name, session)
	switch {
	case errors.Is(err, ErrStateNotFound):
		return f.pending(session), false
	case err != nil:
		f.logger.WarnContext(ctx, "failed to load form state", logger.Error(err))
		return f.pending(session), false
	case !prev.Validated:
		return f.pending(session), false
	}

	return f.Validate(ctx, session, data), true
}

// State returns the last published state of session, or the unvalidated
// State when there is none.
func (f *Form) State(ctx context.Context, session string) (State, error) {
	st, err := f.store.Load(ctx, f.name, session)
	if errors.Is(err, ErrStateNotFound) {
		return f.pending(session), nil
	}
	if err != nil {
		return State{}, err
	}
	return st, nil
}

func (f *Form) pending(session string) State {
	return State{Form: f.name, Session: session, Errors: map[string]string{}}
}

func (f *Form) engineFor(ctx context.Context) *validator.Engine {
	if f.lookup == nil {
		return f.engine
	}
	if l := f.lookup(ctx); l != nil {
		return f.engine.Localized(l)
	}
	return f.engine
}

func (f *Form) publish(ctx context.Context, st State) {
	if err := f.store.Save(ctx, st); err != nil {
		f.logger.ErrorContext(ctx, "failed to publish form state", logger.Error(err))
	}
}
