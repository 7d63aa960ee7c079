package store

import (
	"errors"
	"fmt"
)

// PersistenceError marks a store-level failure: unreachable backend,
// rejected write, or timeout. The engine propagates it to the caller;
// business-rule warnings never use it.
type PersistenceError struct {
	Op    string
	Sheet string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s [%s]: %v", e.Op, e.Sheet, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Failure wraps err as a PersistenceError unless it already is one.
func Failure(op, sheet string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Sheet: sheet, Err: err}
}

// IsPersistence reports whether err is (or wraps) a store failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
