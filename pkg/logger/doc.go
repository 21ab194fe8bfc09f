// Package logger builds *slog.Logger instances for fieldrules services.
//
// New applies functional options (format, level, output, static attributes,
// environment presets) and wraps the chosen handler with a decorator that
// copies request-scoped values from context.Context into every record.
//
// Validation code logs through plain *slog.Logger values; the helpers in
// attr.go keep attribute names consistent (field, form, session, check,
// error). Form and session identifiers placed in the context with
// WithFormScope are added to every record logged with that context once the
// logger is built with WithFormScopeExtractor.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "fieldrulesd"),
//		logger.WithFormScopeExtractor(),
//	)
//
//	ctx = logger.WithFormScope(ctx, "signup", sessionID)
//	log.WarnContext(ctx, "expression check faulted", logger.Field("age"), logger.Error(err))
package logger
