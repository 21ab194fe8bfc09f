package validator

import (
	"context"
	"io"
	"log/slog"
	"regexp"

	"github.com/expr-lang/expr/vm"

	"github.com/dmitrymomot/fieldrules/pkg/cache"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
)

// Default patterns of the isEmail and isURL checks.
var (
	DefaultEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	DefaultURLRegex   = regexp.MustCompile(`^(?i:https?|ftp)://[^\s/$.?#][^\s]*$`)
)

const (
	// DefaultDateFormat formats date check targets in messages.
	DefaultDateFormat = "2006-01-02"

	// DefaultTranslationPrefix is prepended to message keys, e.g. "validation.required".
	DefaultTranslationPrefix = "validation."

	defaultCacheSize = 256
)

// Engine evaluates rule sets against data records. It is safe for concurrent
// use; the only shared state are the caches of compiled patterns and
// expressions.
type Engine struct {
	emailRegex *regexp.Regexp
	urlRegex   *regexp.Regexp
	dateFormat string
	prefix     string
	lookup     MessageLookup
	logger     *slog.Logger
	cacheSize  int

	patterns *cache.LRU[string, *regexp.Regexp]
	programs *cache.LRU[string, *vm.Program]
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		emailRegex: DefaultEmailRegex,
		urlRegex:   DefaultURLRegex,
		dateFormat: DefaultDateFormat,
		prefix:     DefaultTranslationPrefix,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		cacheSize:  defaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.patterns = cache.NewLRU[string, *regexp.Regexp](e.cacheSize)
	e.programs = cache.NewLRU[string, *vm.Program](e.cacheSize)
	return e
}

// Localized returns a copy of the engine resolving messages with lookup.
// The copy shares the compile caches with e.
func (e *Engine) Localized(lookup MessageLookup) *Engine {
	c := *e
	c.lookup = lookup
	return &c
}

// Validate applies every rule of rs to data and returns the per-field errors.
//
// For each field, in rule order: required runs first and, when it fails,
// suppresses the remaining built-in checks; otherwise, for a present value,
// isEmail, isURL, minLength, maxLength, pattern, min, max, ltDate, lteDate,
// gtDate and gteDate run in that order. The custom check and the expression
// check run last regardless of required. Every failure overwrites the
// field's previous message, so the last failing check wins.
//
// Validate never returns an error: faults in custom and expression checks are
// logged and reported as FaultMessage on their field.
func (e *Engine) Validate(ctx context.Context, rs *rules.RuleSet, data map[string]any) Result {
	res := newResult()
	if rs.Len() == 0 {
		e.logger.WarnContext(ctx, "validation requested with an empty rule set")
		return res
	}

	rs.Each(func(r rules.Rule) {
		e.validateField(ctx, r, data, &res)
	})
	return res
}

func (e *Engine) validateField(ctx context.Context, r rules.Rule, data map[string]any, res *Result) {
	value := indirect(data[r.Field])

	if rules.Enabled(r.Required) && isFalsy(value) {
		res.set(e.message(required(r.Field, r.Required)))
	} else if !isNil(value) {
		for _, c := range e.builtins(ctx, r, value) {
			if !c.ok() {
				res.set(e.message(c))
			}
		}
	}

	if r.Custom.IsSet() {
		if verr, ok := e.custom(ctx, r, data); !ok {
			res.set(verr)
		}
	}

	if r.Expression.IsSet() {
		if verr, ok := e.expression(ctx, r, data); !ok {
			res.set(verr)
		}
	}
}

// Warm compiles the patterns and expressions of rs ahead of the first
// validation and logs the ones that do not compile.
func (e *Engine) Warm(ctx context.Context, rs *rules.RuleSet) {
	rs.Each(func(r rules.Rule) {
		if r.Pattern.IsSet() {
			if _, err := e.patterns.GetOrLoad(r.Pattern.Value(), regexp.Compile); err != nil {
				e.logger.WarnContext(ctx, "pattern check does not compile", logger.Field(r.Field), logger.Error(err))
			}
		}
		if r.Expression.IsSet() {
			if _, err := e.programs.GetOrLoad(r.Expression.Value(), compileExpression); err != nil {
				e.logger.WarnContext(ctx, "expression check does not compile", logger.Field(r.Field), logger.Error(err))
			}
		}
	})
}
