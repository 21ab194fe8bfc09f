package rules

// Check is the configuration of a single check: unset, a plain value, or a
// value with an override message.
type Check[T any] struct {
	value    T
	message  string
	set      bool
	override bool
}

// Plain configures a check with value and the default failure message.
func Plain[T any](value T) Check[T] {
	return Check[T]{value: value, set: true}
}

// Override configures a check with value and a failure message used verbatim.
func Override[T any](value T, message string) Check[T] {
	return Check[T]{value: value, message: message, set: true, override: true}
}

// IsSet reports whether the check was declared.
func (c Check[T]) IsSet() bool { return c.set }

// Value returns the configured threshold, pattern, target or flag.
func (c Check[T]) Value() T { return c.value }

// Message returns the override message and whether the check carries one.
func (c Check[T]) Message() (string, bool) { return c.message, c.override }

// Enabled reports whether a boolean check is declared and switched on.
// `required: false` and `isEmail: { value: false, ... }` are both disabled.
func Enabled(c Check[bool]) bool {
	return c.set && c.value
}
