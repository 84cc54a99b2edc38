package main

import (
	"errors"

	"github.com/jrsteele09/go-auth-client/identity"
)

// Exit codes by error kind
const (
	exitGeneral         = 1
	exitUsage           = 2
	exitUnauthenticated = 3
	exitRemote          = 4
)

func exitCode(err error) int {
	switch identity.KindOf(err) {
	case identity.ErrUnauthenticated, identity.ErrExpired, identity.ErrMalformedToken:
		return exitUnauthenticated
	case identity.ErrInvalidInput, identity.ErrMissingCredential, identity.ErrUnsupportedConnection:
		return exitUsage
	case identity.ErrUpstream, identity.ErrTransport:
		return exitRemote
	}
	return exitGeneral
}

func hintFor(err error) string {
	if errors.Is(err, identity.ErrConfiguration) {
		return "Check the IDENTITY_* environment variables for the selected tenant."
	}
	if exitCode(err) == exitUnauthenticated {
		return `Run "identity login" to start a new session.`
	}
	return ""
}
