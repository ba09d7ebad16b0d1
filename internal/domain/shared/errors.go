package shared

import "errors"

// ErrorKind classifies a failure coming out of the domain or persistence layer.
// The set is closed: callers switch on it to pick a wire status.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindStorageFault ErrorKind = "STORAGE_FAULT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying driver error, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// NewStorageFault wraps a driver error as a storage fault.
func NewStorageFault(err error) *DomainError {
	return &DomainError{
		Kind:    KindStorageFault,
		Message: "storage operation failed",
		Err:     err,
	}
}

// KindOf returns the kind of err, treating anything unclassified as a storage fault.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorageFault
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(KindNotFound, "Resource not found")
	ErrConflict     = NewDomainError(KindConflict, "Resource already exists")
	ErrStorageFault = NewDomainError(KindStorageFault, "storage operation failed")
)
