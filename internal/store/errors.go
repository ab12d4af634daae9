package store

import "fmt"

// StorageError wraps a persistence failure with the operation that hit it.
// Callers swallow it after logging; a storage failure never blocks editing.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}
