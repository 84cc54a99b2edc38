package errors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers of the identity client
var (
	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrMalformedToken  = errors.New("malformed token")
	ErrExpired         = errors.New("expired")

	// Login errors
	ErrMissingCredential     = errors.New("missing credential")
	ErrUnsupportedConnection = errors.New("unsupported connection")

	// Remote errors
	ErrUpstream  = errors.New("upstream error")
	ErrTransport = errors.New("transport error")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
)

// Error carries a kind (one of the sentinels above), a human readable message and
// optionally the underlying cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
		}
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// New creates an error of the given kind
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause creates an error of the given kind wrapping cause
func WithCause(kind error, cause error, message string) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Transport wraps a network level failure, keeping the original error reachable
func Transport(cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: ErrTransport, Message: cause.Error(), Cause: cause}
}

// Upstream reports an error payload returned by a remote service
func Upstream(description string) error {
	if description == "" {
		description = "the identity provider returned an error"
	}
	return &Error{Kind: ErrUpstream, Message: description}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// KindOf returns the kind of err, or nil when err does not carry one
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
