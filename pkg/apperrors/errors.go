package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// StoreError wraps an underlying read/write failure from the relational
// store. The owning recompute aborts and nothing is committed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err with the failing operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// RecomputeError is surfaced when a clear-and-rebuild run fails. The
// transaction has been rolled back; prior derived data is intact.
type RecomputeError struct {
	Component string
	Err       error
}

func (e *RecomputeError) Error() string {
	return fmt.Sprintf("recompute %s: %v", e.Component, e.Err)
}

func (e *RecomputeError) Unwrap() error { return e.Err }

// NewRecomputeError wraps err with the owning component.
func NewRecomputeError(component string, err error) *RecomputeError {
	return &RecomputeError{Component: component, Err: err}
}

// ValidationError reports malformed input to a triggering command, e.g.
// an unknown table name in a table-scoped reset.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
