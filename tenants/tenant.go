package tenants

import "strings"

// Kind selects the protocol family a tenant's identity provider speaks
type Kind string

const (
	// KindHosted is an OAuth2 provider with delegation and passwordless endpoints
	KindHosted Kind = "hosted"
	// KindCognito is an AWS Cognito user pool fronted by its hosted UI
	KindCognito Kind = "cognito"
)

// Endpoints are the absolute URLs the client talks to for a tenant. Empty values are
// derived from the tenant's LoginURL and APIOrigin by WithDefaults.
type Endpoints struct {
	Authorize         string `json:"authorize,omitempty"`
	Token             string `json:"token,omitempty"`
	Delegation        string `json:"delegation,omitempty"`
	Logout            string `json:"logout,omitempty"`
	Revoke            string `json:"revoke,omitempty"`
	UserInfo          string `json:"userinfo,omitempty"`
	PasswordlessStart string `json:"passwordlessStart,omitempty"`
	PasswordlessToken string `json:"passwordlessToken,omitempty"`
}

// Tenant is a named identity deployment: where to log in, which client id to present and
// which AWS region backs it.
type Tenant struct {
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	LoginURL    string    `json:"loginUrl"`  // e.g. "https://login.oneblink.io"
	APIOrigin   string    `json:"apiOrigin"` // origin serving delegation for cognito tenants
	ClientID    string    `json:"clientId,omitempty"`
	CallbackURL string    `json:"callbackUrl"`
	Scope       string    `json:"scope,omitempty"`
	Region      string    `json:"region,omitempty"`
	Endpoints   Endpoints `json:"endpoints"`
}

// IsCognito reports whether logins and refreshes should go through the Cognito API
func (t *Tenant) IsCognito() bool {
	return t.Kind == KindCognito
}

// WithDefaults returns a copy with the scope and every unset endpoint filled in
func (t Tenant) WithDefaults() *Tenant {
	login := strings.TrimRight(t.LoginURL, "/")
	api := strings.TrimRight(t.APIOrigin, "/")
	if api == "" {
		api = login
	}

	e := &t.Endpoints
	switch t.Kind {
	case KindCognito:
		if t.Scope == "" {
			t.Scope = "openid profile email"
		}
		setDefault(&e.Authorize, login+"/oauth2/authorize")
		setDefault(&e.Token, login+"/oauth2/token")
		setDefault(&e.Revoke, login+"/oauth2/revoke")
		setDefault(&e.UserInfo, login+"/oauth2/userInfo")
		setDefault(&e.Logout, login+"/logout")
		setDefault(&e.Delegation, api+"/delegation")
		// cognito user pools have no passwordless connection
	default:
		if t.Kind == "" {
			t.Kind = KindHosted
		}
		if t.Scope == "" {
			t.Scope = "openid offline_access"
		}
		setDefault(&e.Authorize, login+"/authorize")
		setDefault(&e.Token, login+"/oauth/token")
		setDefault(&e.Revoke, login+"/oauth/revoke")
		setDefault(&e.UserInfo, login+"/userinfo")
		setDefault(&e.Logout, login+"/v2/logout")
		setDefault(&e.Delegation, api+"/delegation")
		setDefault(&e.PasswordlessStart, login+"/passwordless/start")
		setDefault(&e.PasswordlessToken, login+"/oauth/token")
	}
	return &t
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
