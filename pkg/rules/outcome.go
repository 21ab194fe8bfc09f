package rules

// Outcome is the three-way result of a custom or expression check.
type Outcome struct {
	failed  bool
	message string
}

// Pass reports success.
func Pass() Outcome { return Outcome{} }

// Fail reports failure with the check's default (or override) message.
func Fail() Outcome { return Outcome{failed: true} }

// FailWith reports failure with msg as the field's error message.
// An empty msg is equivalent to Fail.
func FailWith(msg string) Outcome { return Outcome{failed: true, message: msg} }

// OutcomeOf interprets an untyped result: exactly true passes, a non-empty
// string fails with that string, anything else fails with the default message.
func OutcomeOf(v any) Outcome {
	switch r := v.(type) {
	case bool:
		if r {
			return Pass()
		}
	case string:
		return FailWith(r)
	case Outcome:
		return r
	}
	return Fail()
}

// Failed reports whether the check failed.
func (o Outcome) Failed() bool { return o.failed }

// Message returns the message supplied by the check, if any.
func (o Outcome) Message() (string, bool) { return o.message, o.message != "" }
