package nbt

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformed   = errors.New("malformed tag data")
	ErrNegativeLen = errors.New("negative length")
	ErrTooDeep     = errors.New("tag nesting too deep")
	ErrNotCompound = errors.New("root tag is not a compound")
)

// DecodeError provides structured error information for decode faults.
type DecodeError struct {
	Op    string  // Step that failed (e.g., "read payload", "read name")
	Tag   TagType // Tag kind being decoded
	Name  string  // Tag name, when already known
	Cause error   // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("nbt: %s %s %q: %v", e.Op, e.Tag, e.Name, e.Cause)
	}
	return fmt.Sprintf("nbt: %s %s: %v", e.Op, e.Tag, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error or its cause.
func (e *DecodeError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func decodeErr(op string, t TagType, name string, cause error) error {
	return &DecodeError{Op: op, Tag: t, Name: name, Cause: cause}
}
