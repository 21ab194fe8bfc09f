package rules

import "time"

// CustomFunc is a caller-supplied check. It receives the whole data record and
// the name of the field being validated.
type CustomFunc func(data map[string]any, field string) Outcome

// Spec is the set of checks declared for one field.
// Checks run in the order of the fields below; see the validator package.
type Spec struct {
	Required Check[bool]
	IsEmail  Check[bool]
	IsURL    Check[bool]

	MinLength Check[int]
	MaxLength Check[int]
	Pattern   Check[string]

	Min Check[float64]
	Max Check[float64]

	LtDate  Check[time.Time]
	LteDate Check[time.Time]
	GtDate  Check[time.Time]
	GteDate Check[time.Time]

	Custom Check[CustomFunc]

	// Expression is source text compiled at validation time. It sees the data
	// record as `data` and follows the same result contract as Custom.
	Expression Check[string]
}

// Empty reports whether no check is declared.
func (s Spec) Empty() bool {
	return !s.Required.IsSet() && !s.IsEmail.IsSet() && !s.IsURL.IsSet() &&
		!s.MinLength.IsSet() && !s.MaxLength.IsSet() && !s.Pattern.IsSet() &&
		!s.Min.IsSet() && !s.Max.IsSet() &&
		!s.LtDate.IsSet() && !s.LteDate.IsSet() && !s.GtDate.IsSet() && !s.GteDate.IsSet() &&
		!s.Custom.IsSet() && !s.Expression.IsSet()
}

// Rule is a Spec bound to its field key.
type Rule struct {
	Field string
	Spec
}
