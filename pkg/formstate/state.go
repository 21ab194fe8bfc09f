package formstate

import "time"

// State is the published validation state of one form session.
type State struct {
	Form      string            `json:"form"`
	Session   string            `json:"session"`
	Errors    map[string]string `json:"errors"`
	Validated bool              `json:"validated"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IsValid reports whether the session has been validated and has no errors.
func (s State) IsValid() bool {
	return s.Validated && len(s.Errors) == 0
}
