package oauth2

// TokenResponse represents the response from the token, delegation or passwordless endpoints.
// Error payloads share the same body, so Error/ErrorDescription are decoded alongside the tokens.
type TokenResponse struct {
	// IDToken is the OpenID Connect ID token. This is the session token held by the client.
	IDToken string `json:"id_token,omitempty"`

	// AccessToken is the bearer token for the provider's own APIs (e.g. userinfo).
	AccessToken string `json:"access_token,omitempty"`

	// RefreshToken is only present when the provider issued (or rotated) one.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is normally "Bearer"
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token (a hint, the JWT exp claim wins)
	ExpiresIn int `json:"expires_in,omitempty"`

	Scope string `json:"scope,omitempty"`

	ErrorResponse
}

// ErrorResponse is the error payload returned by the identity provider.
type ErrorResponse struct {
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Failed reports whether the payload carries an error
func (e ErrorResponse) Failed() bool {
	return e.Error != ""
}

// Description returns the most useful message for the error
func (e ErrorResponse) Description() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Error
}

// Token returns the session token from the response
func (t *TokenResponse) Token() string {
	if t == nil {
		return ""
	}
	return t.IDToken
}
