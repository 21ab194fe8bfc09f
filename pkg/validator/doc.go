// Package validator evaluates declarative field rules against a data record.
//
// An Engine applies a rules.RuleSet to a map of field values and returns a
// Result holding at most one message per invalid field. Every field is
// independent; within a field the checks run in a fixed order and each
// failing check overwrites the message recorded by an earlier one.
//
// # Check order
//
//  1. required: a falsy value (nil, "", numeric zero, false) fails and skips step 2.
//  2. For a non-nil value: isEmail, isURL, minLength, maxLength, pattern, min,
//     max, ltDate, lteDate, gtDate, gteDate.
//  3. custom, then expression. Both run even when required failed.
//
// # Messages
//
// A check declared with rules.Override reports its message verbatim. Any
// other failure is resolved through the configured MessageLookup with the key
// prefix+key (for example "validation.min_length") and interpolation values
// such as field, min, max, pattern and date. Without a lookup, or when the
// lookup answers with the key itself, the built-in English text is used.
//
// # Extension points
//
// Custom checks are Go functions returning a rules.Outcome. Expression checks
// are compiled with github.com/expr-lang/expr against an environment holding
// the record as `data`; a result of true passes, a non-empty string fails
// with that message, anything else fails with the default message:
//
//	rules.Plain(`data.password == data.confirm ? true : "Passwords do not match"`)
//
// Compiled programs and patterns are cached by source text. A panic, compile
// error or runtime error in either extension is logged and reported as
// FaultMessage for that field only.
//
// # Usage
//
//	engine := validator.New(
//		validator.WithLookup(translator.Lookup("en")),
//		validator.WithLogger(log),
//	)
//
//	res := engine.Validate(ctx, ruleSet, map[string]any{"email": "a@b.co"})
//	if !res.Valid {
//		for _, field := range res.Fields() {
//			fmt.Println(field, res.Errors[field])
//		}
//	}
//
// Result.Err converts a failed result into ValidationErrors, which carries
// the translation key and values of every failure.
package validator
