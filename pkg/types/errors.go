package types

import (
	"errors"
	"fmt"
)

// Standard errors returned by the stores. Callers match with errors.Is.
var (
	// ErrNotFound reports that a referenced bank, session, vignette, or
	// image id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBankReadOnly reports an attempt to mutate a default bank.
	ErrBankReadOnly = errors.New("default banks are read-only")
)

// ValidationError reports rejected input, such as an oversized or
// unsupported image upload, or a missing required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CorruptionError reports that a persisted document was unreadable or
// malformed. Auxiliary documents (catalog, image metadata, answers) are
// self-healed by their stores; primary documents surface as empty results
// with a logged diagnostic.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// IsCorruption returns true if the error wraps a CorruptionError.
func IsCorruption(err error) bool {
	var ce *CorruptionError
	return errors.As(err, &ce)
}
