// Package formstate tracks the validation state of form sessions.
//
// A Form couples the rule set currently in effect for one named form with a
// validator engine and a Store. Rule sets are swapped atomically with
// SetRules, so a declaration change never races an in-flight validation.
//
// Every form session carries a "validated at least once" flag. Validate is
// the explicit entry point (a submit): it runs the validator, sets the flag
// and publishes the State. Revalidate is the live entry point (a keystroke):
// it does nothing until the session has been validated once, so users do not
// see errors for fields they have not finished yet.
//
//	form := formstate.NewForm("signup", ruleSet, engine, formstate.NewMemoryStore())
//	st := form.Validate(ctx, sessionID, data)
//	if !st.IsValid() {
//		render(st.Errors)
//	}
//
// Published states are last-write-wins per session. Store failures are
// logged and never fail a validation.
package formstate
