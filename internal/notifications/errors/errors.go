package errors

import "errors"

var (
	ErrNotFound = errors.New("notification not found")

	ErrDuplicateEntry = errors.New("notification already exists")
)
