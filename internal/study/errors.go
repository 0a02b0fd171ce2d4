package study

import "errors"

var (
	// ErrValidation marks user input that fails a required-field or range
	// check. The operation aborts with no partial state change.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate marks an attempt to add or rename a subject to a name
	// that is already taken.
	ErrDuplicate = errors.New("duplicate subject name")

	// ErrNotFound marks an operation on a reference that no longer exists.
	ErrNotFound = errors.New("not found")
)
