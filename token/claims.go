package token

import "time"

// Claims are the decoded, unverified claims of a session token. They are metadata only
// and must never be treated as proof of identity.
type Claims struct {
	ExpiresAt time.Time

	// RefreshBefore is the provider configured early refresh window
	// (refreshIdTokenBeforeSeconds), nil when the token does not carry one.
	RefreshBefore *time.Duration

	ServiceSettingsURL string

	Subject string
	Email   string
	Name    string
	Groups  []string // cognito:groups

	Raw map[string]any
}

// Decoder turns a raw token into Claims
type Decoder interface {
	Decode(raw string) (*Claims, error)
}
