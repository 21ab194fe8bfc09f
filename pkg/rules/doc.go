// Package rules holds the declarative rule model consumed by the validator.
//
// A Spec lists the checks attached to one field. Every check is a Check[T]:
// a tagged variant that is either a plain value (Plain) or a value paired
// with a caller-supplied failure message (Override). Evaluators read the value
// uniformly through Check.Value and branch on Check.Message only when a check
// fails.
//
// Declarations are ordered (field, spec) pairs. Normalize turns them into an
// immutable RuleSet, expanding the shorthand "field: true" into a rule with
// only Required enabled. No consistency checks are performed: a MinLength
// greater than MaxLength is accepted and simply makes the field impossible to
// satisfy.
//
// # Declaring rules in Go
//
//	rs := rules.Normalize(rules.Declarations{
//		rules.Required("email"),
//		rules.Field("email", &rules.Spec{
//			Required: rules.Override(true, "Email is mandatory"),
//			IsEmail:  rules.Plain(true),
//		}),
//		rules.Field("age", &rules.Spec{Min: rules.Plain(18.0)}),
//	})
//
// # Declaring rules in YAML or JSON
//
// Parse reads the same model from YAML or JSON and keeps the declaration
// order of the document:
//
//	email: true
//	password:
//	  required: true
//	  minLength: { value: 8, message: "Use at least 8 characters" }
//	  pattern: "[0-9]"
//	age:
//	  expression: 'data.age >= 18 ? true : "You must be an adult"'
//
// Custom checks are Go functions; in documents they are referenced by name and
// resolved against a registry passed with WithFuncs.
package rules
