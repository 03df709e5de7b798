package errors

import "errors"

var (
	ErrNotFound  = errors.New("ticket not found")
	ErrInvalidID = errors.New("invalid ticket id format")
)
