package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes the failure recorded for one field.
// TranslationKey is empty when the message came from an override record or
// from a custom or expression check.
type ValidationError struct {
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"translation_key,omitempty"`
	TranslationValues map[string]any `json:"translation_values,omitempty"`
}

// ValidationErrors is the error form of a failed Result, one entry per field
// in rule order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationErrors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.Get(field)
	return ok
}

// Get returns the message recorded for field.
func (ve ValidationErrors) Get(field string) (string, bool) {
	for _, err := range ve {
		if err.Field == field {
			return err.Message, true
		}
	}
	return "", false
}

func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Map flattens the errors into field → message.
func (ve ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(ve))
	for _, err := range ve {
		m[err.Field] = err.Message
	}
	return m
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
