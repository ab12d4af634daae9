package remote

import "fmt"

// RemoteError is a failed search or detail fetch. It surfaces as a transient
// status message, never a crash.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error, if any.
func (e *RemoteError) Unwrap() error {
	return e.Err
}
