package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
)

// exprEnv is the environment expression checks are compiled against.
// Only `data` is visible; referencing anything else is a compile error.
var exprEnv = map[string]any{"data": map[string]any{}}

// custom runs the caller-supplied function of r. ok is false when the field
// must be marked invalid.
func (e *Engine) custom(ctx context.Context, r rules.Rule, data map[string]any) (ValidationError, bool) {
	fn := r.Custom.Value()
	if fn == nil {
		return ValidationError{}, true
	}

	outcome, err := callCustom(fn, data, r.Field)
	if err != nil {
		e.logger.WarnContext(ctx, "custom check faulted", logger.Field(r.Field), logger.Error(err))
		return fault(r.Field), false
	}
	msg, overridden := r.Custom.Message()
	return e.outcome(r.Field, outcome, msg, overridden)
}

func callCustom(fn rules.CustomFunc, data map[string]any, field string) (o rules.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Join(ErrCustomPanic, fmt.Errorf("%v", rec))
		}
	}()
	return fn(data, field), nil
}

// expression compiles (or reuses) the program of r and runs it against data.
func (e *Engine) expression(ctx context.Context, r rules.Rule, data map[string]any) (ValidationError, bool) {
	src := r.Expression.Value()

	program, err := e.programs.GetOrLoad(src, compileExpression)
	if err != nil {
		e.logger.WarnContext(ctx, "expression check does not compile", logger.Field(r.Field), logger.Error(err))
		return fault(r.Field), false
	}

	out, err := runExpression(program, data)
	if err != nil {
		e.logger.WarnContext(ctx, "expression check faulted", logger.Field(r.Field), logger.Error(err))
		return fault(r.Field), false
	}
	msg, overridden := r.Expression.Message()
	return e.outcome(r.Field, rules.OutcomeOf(out), msg, overridden)
}

func compileExpression(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(exprEnv))
	if err != nil {
		return nil, errors.Join(ErrExpressionCompile, err)
	}
	return program, nil
}

func runExpression(program *vm.Program, data map[string]any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Join(ErrExpressionRun, fmt.Errorf("%v", rec))
		}
	}()

	if data == nil {
		data = map[string]any{}
	}
	out, err = expr.Run(program, map[string]any{"data": data})
	if err != nil {
		return nil, errors.Join(ErrExpressionRun, err)
	}
	return out, nil
}

// outcome maps a three-way result onto a field error. A message returned by
// the check wins over the override message, which wins over the default.
func (e *Engine) outcome(field string, o rules.Outcome, override string, overridden bool) (ValidationError, bool) {
	if !o.Failed() {
		return ValidationError{}, true
	}
	if msg, ok := o.Message(); ok {
		return ValidationError{Field: field, Message: msg}, false
	}
	return e.message(check{
		err: ValidationError{
			Field:          field,
			Message:        "is invalid",
			TranslationKey: KeyCustom,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
		message:  override,
		override: overridden,
	}), false
}

func fault(field string) ValidationError {
	return ValidationError{Field: field, Message: FaultMessage}
}
