package oauthmodel

import "github.com/jrsteele09/go-auth-client/oauth2"

// SendCode asks the provider to send a one time code rather than a magic link
const SendCode = "code"

// PasswordlessStartRequest asks the provider to send a one time code to a phone or email.
type PasswordlessStartRequest struct {
	ClientID    string            `json:"client_id"`
	Connection  oauth2.Connection `json:"connection"`
	Send        string            `json:"send,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Email       string            `json:"email,omitempty"`
}

// NewPasswordlessStartRequest addresses the request to contact using the field the
// connection expects.
func NewPasswordlessStartRequest(clientID string, connection oauth2.Connection, contact string) PasswordlessStartRequest {
	r := PasswordlessStartRequest{
		ClientID:   clientID,
		Connection: connection,
		Send:       SendCode,
	}
	if connection == oauth2.EmailConnection {
		r.Email = contact
	} else {
		r.PhoneNumber = contact
	}
	return r
}

// PasswordlessTokenRequest exchanges the one time code for tokens
type PasswordlessTokenRequest struct {
	GrantType oauth2.GrantType  `json:"grant_type"`
	ClientID  string            `json:"client_id"`
	Username  string            `json:"username"`
	OTP       string            `json:"otp"`
	Realm     oauth2.Connection `json:"realm"`
	Scope     string            `json:"scope,omitempty"`
}
