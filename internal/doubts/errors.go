package doubts

import "errors"

var (
	// ErrValidation marks input that failed a required-field check.
	ErrValidation = errors.New("doubts: validation failed")
	// ErrNotFound is returned when an id does not match any doubt.
	ErrNotFound = errors.New("doubts: not found")
)
