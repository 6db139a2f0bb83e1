package errors

import "errors"

var (
	ErrSlotNotFound = errors.New("slot not found")

	ErrGymNotFound = errors.New("gym center not found")

	ErrDuplicateEntry = errors.New("catalog entry already exists")
)
