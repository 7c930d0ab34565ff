package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies every error that leaves the service layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
)

// ReasonValidation is the wire "reason" of validation failures.
const ReasonValidation = "ValidationError"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return ReasonValidation
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Internal"
	}
}

// Error is the closed set of outcomes callers may act on.
// Only Validation errors carry client-visible detail.
type Error struct {
	Kind     Kind
	Location string // offending field, Validation only
	Message  string // Validation only
	cause    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("%s: %s (%s)", ReasonValidation, e.Message, e.Location)
	case KindUnauthorized:
		if e.cause != nil {
			return "unauthorized: " + e.cause.Error()
		}
		return "unauthorized"
	default:
		if e.cause != nil {
			return "internal: " + e.cause.Error()
		}
		return "internal"
	}
}

func (e *Error) Unwrap() error { return e.cause }

func NewValidationError(location, message string) *Error {
	return &Error{Kind: KindValidation, Location: location, Message: message}
}

// NewUnauthorized keeps cause for logs only.
func NewUnauthorized(cause error) *Error {
	return &Error{Kind: KindUnauthorized, cause: cause}
}

// NewInternal keeps cause for logs only.
func NewInternal(cause error) *Error {
	return &Error{Kind: KindInternal, cause: cause}
}

// AsError classifies err; anything that is not already an *Error is Internal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return NewInternal(err)
}

// IsKind reports whether err classifies as k.
func IsKind(err error, k Kind) bool {
	se := AsError(err)
	return se != nil && se.Kind == k
}
