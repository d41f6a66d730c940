// Package errs holds the error taxonomy shared by the catalog packages.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by writes that target a missing record.
// Reads report absence as a nil result instead.
var ErrNotFound = errors.New("record not found")

// ValidationError names the input field and the rule it broke.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

// Invalid builds a *ValidationError.
func Invalid(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

// StorageError wraps a failure reported by the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a *StorageError for op. Nil stays nil; errors that are
// already classified pass through unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
