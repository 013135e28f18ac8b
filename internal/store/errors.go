// internal/store/errors.go
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrSegmentNotFound = errors.New("store: segment not found")
	ErrRecordNotFound  = errors.New("store: record not found")
	ErrTxDone          = errors.New("store: transaction already finished")

	// ErrConflict is returned by Commit when a concurrent transaction
	// touched the same keys. Retrying the whole transaction is safe.
	ErrConflict = badger.ErrConflict
)

// Error is a failed store operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}
