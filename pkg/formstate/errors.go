package formstate

import "errors"

var (
	// ErrStateNotFound is returned by Store.Load for a session with no published state.
	ErrStateNotFound = errors.New("form state not found")

	ErrFailedToLoadState = errors.New("failed to load form state")
	ErrFailedToSaveState = errors.New("failed to save form state")

	// ErrInvalidFormName is returned by RedisStore for form names containing ':',
	// which would make its keys ambiguous.
	ErrInvalidFormName = errors.New("form name must not contain ':'")

	// ErrUnknownForm is returned for a form name without rules.
	ErrUnknownForm = errors.New("unknown form")
)
