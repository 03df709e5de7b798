package errors

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmptyUpdate = errors.New("no fields to update")
)
