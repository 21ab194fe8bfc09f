package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("redis: connection URL is empty")
	ErrInvalidConnectionURL = errors.New("redis: invalid connection URL")
	ErrRedisNotReady        = errors.New("redis: server not ready before retries ran out")
	ErrHealthcheckFailed    = errors.New("redis: ping failed")
)
