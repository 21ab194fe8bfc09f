package rules

import "errors"

var (
	// ErrInvalidDocument is returned when a rules document is not a mapping of fields.
	ErrInvalidDocument = errors.New("rules: invalid rules document")

	// ErrInvalidField is returned when a field declaration is neither `true` nor a mapping of checks.
	ErrInvalidField = errors.New("rules: invalid field declaration")

	// ErrUnknownCheck is returned when a document names a check the engine does not know.
	ErrUnknownCheck = errors.New("rules: unknown check")

	// ErrInvalidCheckValue is returned when a check value cannot be decoded into the check's type.
	ErrInvalidCheckValue = errors.New("rules: invalid check value")

	// ErrUnknownFunc is returned when a custom check references a function missing from the registry.
	ErrUnknownFunc = errors.New("rules: unknown custom function")
)
