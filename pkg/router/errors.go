package router

import "errors"

var (
	ErrInvalidEvent = errors.New("router: invalid event")
	ErrMissingType  = errors.New("router: event type is required")
)
