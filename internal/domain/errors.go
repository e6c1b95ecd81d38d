package domain

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when a referenced user id does not exist.
var ErrUserNotFound = errors.New("could not find user")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StorageError wraps a failed store operation with the operation name.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
