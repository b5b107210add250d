// Package apperr holds the error taxonomy shared by the admin operations.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by the per-entity not-found sentinels.
var ErrNotFound = errors.New("not found")

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is raised before any backend call when a required field
// is empty or malformed.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// ErrPersist matches any *PersistError via errors.Is.
var ErrPersist = errors.New("operation failed")

// PersistError wraps a data service failure. Callers only learn that the
// operation failed; Err is kept for logs.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: operation failed", e.Op)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersist }

func Persist(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistError{Op: op, Err: err}
}
