package export

import "fmt"

// ImportFormatError means a user-supplied file set does not match the
// expected project shape. The import is aborted; no partial state is
// applied.
type ImportFormatError struct {
	Reason string
}

// Error implements the error interface.
func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("import: %s", e.Reason)
}
