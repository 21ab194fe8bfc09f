package rules

import (
	"fmt"
	"slices"
)

// Declaration binds a field to its spec. A nil Spec is the shorthand for
// "required only".
type Declaration struct {
	Field string
	Spec  *Spec
}

// Declarations is an ordered list of field declarations.
type Declarations []Declaration

// Required declares field with the shorthand form.
func Required(field string) Declaration {
	return Declaration{Field: field}
}

// Field declares field with a full spec.
func Field(field string, spec *Spec) Declaration {
	return Declaration{Field: field, Spec: spec}
}

// FromMap builds declarations from a map whose values are `true`, Spec or *Spec.
// Keys are sorted because Go maps carry no insertion order.
// A `false` value declares nothing for the field.
func FromMap(m map[string]any) (Declarations, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	decls := make(Declarations, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case bool:
			if v {
				decls = append(decls, Required(k))
			}
		case Spec:
			decls = append(decls, Field(k, &v))
		case *Spec:
			decls = append(decls, Field(k, v))
		default:
			return nil, fmt.Errorf("%w: field %q has type %T", ErrInvalidField, k, v)
		}
	}
	return decls, nil
}

// RuleSet is the normalized, immutable collection of rules currently in effect.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

// Normalize converts declarations into a RuleSet. A field declared twice keeps
// its first position and the later spec.
func Normalize(decls Declarations) *RuleSet {
	rs := &RuleSet{
		rules: make([]Rule, 0, len(decls)),
		index: make(map[string]int, len(decls)),
	}

	for _, d := range decls {
		rule := Rule{Field: d.Field}
		if d.Spec == nil {
			rule.Required = Plain(true)
		} else {
			rule.Spec = *d.Spec
		}

		if i, ok := rs.index[d.Field]; ok {
			rs.rules[i] = rule
			continue
		}
		rs.index[d.Field] = len(rs.rules)
		rs.rules = append(rs.rules, rule)
	}
	return rs
}

// Len returns the number of declared fields. A nil RuleSet is empty.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns the rules in declaration order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.rules)
}

// Fields returns the declared field keys in order.
func (rs *RuleSet) Fields() []string {
	if rs == nil {
		return nil
	}
	fields := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		fields[i] = r.Field
	}
	return fields
}

// Get returns the rule for field.
func (rs *RuleSet) Get(field string) (Rule, bool) {
	if rs == nil {
		return Rule{}, false
	}
	i, ok := rs.index[field]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[i], true
}

// Each calls fn for every rule in order without copying the slice.
func (rs *RuleSet) Each(fn func(Rule)) {
	if rs == nil {
		return
	}
	for _, r := range rs.rules {
		fn(r)
	}
}
