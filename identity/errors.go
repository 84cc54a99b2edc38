package identity

import autherrors "github.com/jrsteele09/go-auth-client/internal/errors"

// Error kinds returned by the client. Match them with errors.Is.
var (
	ErrUnauthenticated       = autherrors.ErrUnauthenticated
	ErrMalformedToken        = autherrors.ErrMalformedToken
	ErrExpired               = autherrors.ErrExpired
	ErrMissingCredential     = autherrors.ErrMissingCredential
	ErrUnsupportedConnection = autherrors.ErrUnsupportedConnection
	ErrUpstream              = autherrors.ErrUpstream
	ErrTransport             = autherrors.ErrTransport
	ErrInvalidInput          = autherrors.ErrInvalidInput
	ErrConfiguration         = autherrors.ErrConfiguration
)

// Error is the concrete error type, carrying a kind and a human readable message
type Error = autherrors.Error

// KindOf returns the kind an error carries (one of the Err values above), or nil
func KindOf(err error) error {
	return autherrors.KindOf(err)
}
