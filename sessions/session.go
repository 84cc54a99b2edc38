package sessions

import "slices"

// Record is the persisted session. It is owned by a Store and is the only state shared
// between invocations of the client.
type Record struct {
	IDToken      string `json:"id_token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`

	// LegacyAccessToken mirrors IDToken for files shared with older clients, which only
	// knew about "accessToken".
	LegacyAccessToken string `json:"accessToken,omitempty"`

	Tenants         TenantSelection `json:"tenants"`
	LoginPreference string          `json:"loginPreference,omitempty"`
}

// Token returns the session token, falling back to the legacy field
func (r *Record) Token() string {
	if r == nil {
		return ""
	}
	if r.IDToken != "" {
		return r.IDToken
	}
	return r.LegacyAccessToken
}

// SetTokens stores a freshly issued token set. An empty refresh token keeps the current
// one, since providers only return a refresh token when they rotate it.
func (r *Record) SetTokens(idToken, accessToken, refreshToken string) {
	r.IDToken = idToken
	r.LegacyAccessToken = idToken
	if accessToken != "" {
		r.AccessToken = accessToken
	}
	if refreshToken != "" {
		r.RefreshToken = refreshToken
	}
}

// ClearTokens removes every token field
func (r *Record) ClearTokens() {
	r.IDToken = ""
	r.AccessToken = ""
	r.RefreshToken = ""
	r.LegacyAccessToken = ""
}

// HasTokens reports whether any token field is set
func (r *Record) HasTokens() bool {
	return r.IDToken != "" || r.AccessToken != "" || r.RefreshToken != "" || r.LegacyAccessToken != ""
}

// Clone returns a deep copy
func (r *Record) Clone() *Record {
	if r == nil {
		return &Record{}
	}
	c := *r
	c.Tenants.Previous = slices.Clone(r.Tenants.Previous)
	return &c
}
