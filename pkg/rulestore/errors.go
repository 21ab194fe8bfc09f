package rulestore

import "errors"

var (
	ErrFailedToLoadRules = errors.New("failed to load rule declarations")

	// ErrInvalidRules wraps a document that does not decode; the message names the form.
	ErrInvalidRules = errors.New("invalid rule declarations")

	ErrFailedToSaveRules = errors.New("failed to save rule declarations")
	ErrFormNotFound      = errors.New("form not found")
	ErrEmptyFormName     = errors.New("empty form name")
)
