package errors

import "errors"

var (
	ErrNotFound = errors.New("mentorship slot not found")

	ErrInvalidID = errors.New("invalid slot ID format")

	ErrConfigMissing = errors.New("mentorship config document missing")
)
