package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned by Create when the id is already taken.
	ErrDuplicateID = errors.New("id already registered")

	// ErrNotFound is returned when no record exists under the given id.
	ErrNotFound = errors.New("user not found")

	// ErrIDImmutable is returned by Update when the replacement record
	// carries a different id than the one being updated.
	ErrIDImmutable = errors.New("id cannot be changed")
)

// CorruptSnapshotError reports a snapshot file that exists but cannot be
// decoded. It is fatal: the store refuses to start over a file it cannot
// read rather than risk overwriting it.
type CorruptSnapshotError struct {
	Path string
	Err  error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot %s: %v", e.Path, e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Err
}
