package oauthmodel

import (
	"net/url"

	"github.com/jrsteele09/go-auth-client/oauth2"
)

// TokenRequest holds the form parameters posted to the /oauth2/token endpoint.
// Only the fields relevant to GrantType need to be set; empty fields are not sent.
type TokenRequest struct {
	GrantType oauth2.GrantType
	ClientID  string

	// authorization_code grant
	Code         string
	CodeVerifier string
	RedirectURI  string

	// refresh_token grant
	RefreshToken string

	// password grant
	Username string
	Password string

	Scope string
}

// Form encodes the request as application/x-www-form-urlencoded values
func (r TokenRequest) Form() url.Values {
	form := url.Values{}
	set := func(key, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}
	set("grant_type", string(r.GrantType))
	set("client_id", r.ClientID)
	set("code", r.Code)
	set("code_verifier", r.CodeVerifier)
	set("redirect_uri", r.RedirectURI)
	set("refresh_token", r.RefreshToken)
	set("username", r.Username)
	set("password", r.Password)
	set("scope", r.Scope)
	return form
}

// RevokeRequest revokes a refresh token at the /oauth2/revoke endpoint
type RevokeRequest struct {
	ClientID string
	Token    string
}

func (r RevokeRequest) Form() url.Values {
	return url.Values{
		"client_id": {r.ClientID},
		"token":     {r.Token},
	}
}
