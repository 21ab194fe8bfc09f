package validator

// Result is the outcome of one Validate call.
// Errors holds at most one message per field; a missing key means the field passed.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`

	details ValidationErrors
}

func newResult() Result {
	return Result{Valid: true, Errors: map[string]string{}}
}

// set records verr for its field, replacing any earlier failure of that field.
func (r *Result) set(verr ValidationError) {
	if _, ok := r.Errors[verr.Field]; ok {
		for i := range r.details {
			if r.details[i].Field == verr.Field {
				r.details[i] = verr
				break
			}
		}
	} else {
		r.details = append(r.details, verr)
	}
	r.Errors[verr.Field] = verr.Message
	r.Valid = false
}

// Has reports whether field failed.
func (r Result) Has(field string) bool {
	_, ok := r.Errors[field]
	return ok
}

// Get returns the message recorded for field.
func (r Result) Get(field string) (string, bool) {
	msg, ok := r.Errors[field]
	return msg, ok
}

// Fields returns the failing fields in rule order.
func (r Result) Fields() []string {
	return r.details.Fields()
}

// Details returns the failures with their translation keys and values.
func (r Result) Details() ValidationErrors {
	return append(ValidationErrors(nil), r.details...)
}

// Err returns nil for a valid result and ValidationErrors otherwise.
func (r Result) Err() error {
	if len(r.details) == 0 {
		return nil
	}
	return r.Details()
}
