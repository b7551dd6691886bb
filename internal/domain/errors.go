package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals search input that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDocument signals an index document that failed validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnauthenticated signals a request without a user identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEngineUnavailable signals a search engine failure.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrDirectoryUnavailable signals a principal directory failure.
	ErrDirectoryUnavailable = errors.New("principal directory unavailable")
	// ErrUnknownProfile signals a search profile that is not registered.
	ErrUnknownProfile = errors.New("unknown search profile")
)

// EngineError wraps an engine failure with the operation that produced it.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrEngineUnavailable.Error(), e.Op, e.Err)
}

// Unwrap lets errors.Is match both the sentinel and the cause.
func (e *EngineError) Unwrap() []error { return []error{ErrEngineUnavailable, e.Err} }

// NewEngineError creates an engine error for the given operation.
func NewEngineError(op string, err error) error {
	return &EngineError{Op: op, Err: err}
}
