package validator

import "errors"

var (
	// ErrValidationFailed matches every ValidationErrors value via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidRegex is returned when a configured email or URL pattern does not compile.
	ErrInvalidRegex = errors.New("invalid regular expression")

	// ErrInvalidPattern is logged when a field's pattern check does not compile.
	ErrInvalidPattern = errors.New("invalid pattern check")

	// ErrExpressionCompile is logged when an expression check does not compile.
	ErrExpressionCompile = errors.New("expression check failed to compile")

	// ErrExpressionRun is logged when an expression check faults while running.
	ErrExpressionRun = errors.New("expression check failed to run")

	// ErrCustomPanic is logged when a custom check panics.
	ErrCustomPanic = errors.New("custom check panicked")
)
