package errors

import "errors"

var (
	ErrNotFound  = errors.New("application not found")
	ErrSubmitted = errors.New("application already submitted")
)
