package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// NotFoundError reports that a referenced record is absent from the store.
// Fatal for the call that needed it; distinct from an absent sub-chain,
// which reads represent as nil fields.
type NotFoundError struct {
	Entity string // "parcel", "address", ...
	Key    string // the lookup key that missed
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// ConflictError reports a uniqueness race the upsert layer could not
// resolve with its single re-read, or an attempt to create a second active
// link for a (parcel, role) or (human, role) slot. The caller may retry
// the whole reconcile once.
type ConflictError struct {
	Entity string
	Key    string
	Err    error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conflict on %s %s: %v", e.Entity, e.Key, e.Err)
	}
	return fmt.Sprintf("conflict on %s %s", e.Entity, e.Key)
}

// Unwrap returns the underlying driver error, if any.
func (e *ConflictError) Unwrap() error { return e.Err }

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// asConflict converts a SQLite constraint violation into a ConflictError,
// passing every other error through unchanged.
func asConflict(err error, entity, key string) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return &ConflictError{Entity: entity, Key: key, Err: err}
	}
	return err
}
