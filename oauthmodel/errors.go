package oauthmodel

import "errors"

var (
	ErrMissingClientID     = errors.New("missing client id")
	ErrInvalidRedirectUri  = errors.New("invalid or no redirect uri")
	ErrInvalidCodeVerifier = errors.New("invalid code verifier")
	ErrMissingEndpoint     = errors.New("missing endpoint")
)
