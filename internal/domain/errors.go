package domain

import "errors"

// Sentinel errors the API layer maps onto HTTP status codes.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
