package validator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
)

// check is one built-in condition bound to a value, with the error it reports
// when ok returns false.
type check struct {
	ok       func() bool
	err      ValidationError
	message  string
	override bool
}

func newCheck[T any](c rules.Check[T], ok func() bool, err ValidationError) check {
	msg, override := c.Message()
	return check{ok: ok, err: err, message: msg, override: override}
}

// builtins returns the type checks of r in evaluation order.
func (e *Engine) builtins(ctx context.Context, r rules.Rule, value any) []check {
	checks := make([]check, 0, 4)
	if rules.Enabled(r.IsEmail) {
		checks = append(checks, e.email(r.Field, value, r.IsEmail))
	}
	if rules.Enabled(r.IsURL) {
		checks = append(checks, e.url(r.Field, value, r.IsURL))
	}
	if r.MinLength.IsSet() {
		checks = append(checks, minLength(r.Field, value, r.MinLength))
	}
	if r.MaxLength.IsSet() {
		checks = append(checks, maxLength(r.Field, value, r.MaxLength))
	}
	if r.Pattern.IsSet() {
		checks = append(checks, e.pattern(ctx, r.Field, value, r.Pattern))
	}
	if r.Min.IsSet() {
		checks = append(checks, minimum(r.Field, value, r.Min))
	}
	if r.Max.IsSet() {
		checks = append(checks, maximum(r.Field, value, r.Max))
	}
	if r.LtDate.IsSet() {
		checks = append(checks, e.dateCheck(r.Field, value, r.LtDate, KeyLtDate, "date must be before %s",
			func(v, t time.Time) bool { return v.Before(t) }))
	}
	if r.LteDate.IsSet() {
		checks = append(checks, e.dateCheck(r.Field, value, r.LteDate, KeyLteDate, "date must be on or before %s",
			func(v, t time.Time) bool { return !v.After(t) }))
	}
	if r.GtDate.IsSet() {
		checks = append(checks, e.dateCheck(r.Field, value, r.GtDate, KeyGtDate, "date must be after %s",
			func(v, t time.Time) bool { return v.After(t) }))
	}
	if r.GteDate.IsSet() {
		checks = append(checks, e.dateCheck(r.Field, value, r.GteDate, KeyGteDate, "date must be on or after %s",
			func(v, t time.Time) bool { return !v.Before(t) }))
	}
	return checks
}

// required is only built for a value already known to be falsy.
func required(field string, c rules.Check[bool]) check {
	return newCheck(c, func() bool { return false }, ValidationError{
		Field:          field,
		Message:        "field is required",
		TranslationKey: KeyRequired,
		TranslationValues: map[string]any{
			"field": field,
		},
	})
}

func (e *Engine) email(field string, value any, c rules.Check[bool]) check {
	re := e.emailRegex
	return newCheck(c, func() bool {
		return re.MatchString(text(value))
	}, ValidationError{
		Field:          field,
		Message:        "must be a valid email address",
		TranslationKey: KeyEmail,
		TranslationValues: map[string]any{
			"field": field,
		},
	})
}

func (e *Engine) url(field string, value any, c rules.Check[bool]) check {
	re := e.urlRegex
	return newCheck(c, func() bool {
		return re.MatchString(text(value))
	}, ValidationError{
		Field:          field,
		Message:        "must be a valid URL",
		TranslationKey: KeyURL,
		TranslationValues: map[string]any{
			"field": field,
		},
	})
}

// minLength never fails for values without a length.
func minLength(field string, value any, c rules.Check[int]) check {
	n := c.Value()
	return newCheck(c, func() bool {
		l, ok := length(value)
		return !ok || l >= n
	}, ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be at least %d characters long", n),
		TranslationKey: KeyMinLength,
		TranslationValues: map[string]any{
			"field": field,
			"min":   n,
		},
	})
}

func maxLength(field string, value any, c rules.Check[int]) check {
	n := c.Value()
	return newCheck(c, func() bool {
		l, ok := length(value)
		return !ok || l <= n
	}, ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be at most %d characters long", n),
		TranslationKey: KeyMaxLength,
		TranslationValues: map[string]any{
			"field": field,
			"max":   n,
		},
	})
}

// pattern fails when the expression does not compile.
func (e *Engine) pattern(ctx context.Context, field string, value any, c rules.Check[string]) check {
	src := c.Value()
	return newCheck(c, func() bool {
		re, err := e.patterns.GetOrLoad(src, regexp.Compile)
		if err != nil {
			e.logger.WarnContext(ctx, "pattern check does not compile",
				logger.Field(field),
				logger.Error(errors.Join(ErrInvalidPattern, err)),
			)
			return false
		}
		return re.MatchString(text(value))
	}, ValidationError{
		Field:          field,
		Message:        "has an invalid format",
		TranslationKey: KeyPattern,
		TranslationValues: map[string]any{
			"field":   field,
			"pattern": src,
		},
	})
}

// minimum never fails for non-numeric values.
func minimum(field string, value any, c rules.Check[float64]) check {
	limit := c.Value()
	return newCheck(c, func() bool {
		n, ok := number(value)
		return !ok || !(n < limit)
	}, ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be at least %v", limit),
		TranslationKey: KeyMin,
		TranslationValues: map[string]any{
			"field": field,
			"min":   limit,
		},
	})
}

func maximum(field string, value any, c rules.Check[float64]) check {
	limit := c.Value()
	return newCheck(c, func() bool {
		n, ok := number(value)
		return !ok || !(n > limit)
	}, ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be at most %v", limit),
		TranslationKey: KeyMax,
		TranslationValues: map[string]any{
			"field": field,
			"max":   limit,
		},
	})
}

// dateCheck fails for values that cannot be read as a date.
func (e *Engine) dateCheck(field string, value any, c rules.Check[time.Time], key, format string, cmp func(v, target time.Time) bool) check {
	target := c.Value()
	formatted := target.Format(e.dateFormat)
	return newCheck(c, func() bool {
		v, ok := e.date(value)
		return ok && cmp(v, target)
	}, ValidationError{
		Field:          field,
		Message:        fmt.Sprintf(format, formatted),
		TranslationKey: key,
		TranslationValues: map[string]any{
			"field": field,
			"date":  formatted,
		},
	})
}
