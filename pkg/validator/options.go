package validator

import (
	"log/slog"
	"regexp"
)

// Option configures an Engine.
type Option func(*Engine)

// WithEmailRegex replaces the pattern used by isEmail checks.
func WithEmailRegex(re *regexp.Regexp) Option {
	return func(e *Engine) {
		if re != nil {
			e.emailRegex = re
		}
	}
}

// WithURLRegex replaces the pattern used by isURL checks.
func WithURLRegex(re *regexp.Regexp) Option {
	return func(e *Engine) {
		if re != nil {
			e.urlRegex = re
		}
	}
}

// WithDateFormat sets the Go time layout used to format date check targets in
// messages. It is also the first layout tried when parsing string values.
func WithDateFormat(layout string) Option {
	return func(e *Engine) {
		if layout != "" {
			e.dateFormat = layout
		}
	}
}

// WithTranslationPrefix sets the string prepended to translation keys.
// NoTranslationPrefix disables the prefix.
func WithTranslationPrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix == NoTranslationPrefix {
			prefix = ""
		}
		e.prefix = prefix
	}
}

// WithoutTranslationPrefix looks up bare keys such as "required".
func WithoutTranslationPrefix() Option {
	return WithTranslationPrefix(NoTranslationPrefix)
}

// WithLookup sets the function that resolves default messages.
func WithLookup(lookup MessageLookup) Option {
	return func(e *Engine) {
		e.lookup = lookup
	}
}

// WithLogger sets the logger for configuration anomalies and check faults.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCacheSize bounds the caches of compiled patterns and expressions.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}
