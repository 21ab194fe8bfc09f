package formhttp

import "errors"

var (
	ErrInvalidBody    = errors.New("invalid request body")
	ErrMissingSession = errors.New("session is required")
)
