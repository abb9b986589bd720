package store

import "fmt"

// StorageError wraps any connectivity or constraint failure from the
// underlying store. Not-found is never a StorageError: Load reports it
// as a nil result and Remove treats it as a no-op.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
