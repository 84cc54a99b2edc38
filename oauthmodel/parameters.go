package oauthmodel

import (
	"strings"

	"golang.org/x/oauth2"
)

// minVerifierLength is the shortest code_verifier allowed by RFC 7636
const minVerifierLength = 43

// AuthorizationParameters holds the parameters sent to the /authorize endpoint when a
// browser login is started.
type AuthorizationParameters struct {
	// AuthorizeURL is the provider's authorization endpoint.
	// Example: "https://login.oneblink.io/authorize"
	AuthorizeURL string

	// ClientID identifies the application requesting authorization.
	ClientID string

	// RedirectURI is where the provider sends the user after login. For CLI logins this is a
	// page that displays the authorization code so the user can paste it back.
	RedirectURI string

	// Scope is the space separated list of requested scopes.
	// Example: "openid profile email"
	Scope string

	// CodeVerifier is the locally held PKCE secret. Only its S256 challenge leaves the process.
	CodeVerifier string
}

// Validate checks the parameters can produce a usable authorization URL
func (p *AuthorizationParameters) Validate() error {
	if strings.TrimSpace(p.AuthorizeURL) == "" {
		return ErrMissingEndpoint
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrMissingClientID
	}
	if strings.TrimSpace(p.RedirectURI) == "" {
		return ErrInvalidRedirectUri
	}
	if len(p.CodeVerifier) < minVerifierLength {
		return ErrInvalidCodeVerifier
	}
	return nil
}

// URL builds the authorization URL carrying the S256 code challenge
func (p *AuthorizationParameters) URL() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	cfg := oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURI,
		Scopes:      strings.Fields(p.Scope),
		Endpoint:    oauth2.Endpoint{AuthURL: p.AuthorizeURL},
	}
	return cfg.AuthCodeURL("", oauth2.S256ChallengeOption(p.CodeVerifier)), nil
}

// NewCodeVerifier returns a cryptographically random PKCE verifier (32 random bytes, base64url)
func NewCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallenge derives the S256 challenge for verifier
func CodeChallenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
