package oauthmodel

import (
	"maps"

	"github.com/jrsteele09/go-auth-client/oauth2"
)

// DelegationRequest is posted as JSON to the /delegation endpoint. The current id token is
// exchanged either for a renewed id token (APITypeIdentity) or for AWS credentials (APITypeAWS).
type DelegationRequest struct {
	ClientID string
	IDToken  string
	Scope    string
	APIType  oauth2.APIType

	// Extra parameters (e.g. bmService, bmTenant) are merged over the fields above, so a
	// caller can replace the scope or api_type.
	Extra map[string]any
}

// Body returns the JSON body for the request
func (r DelegationRequest) Body() map[string]any {
	body := map[string]any{
		"client_id":  r.ClientID,
		"id_token":   r.IDToken,
		"scope":      r.Scope,
		"grant_type": string(oauth2.JWTBearerGrant),
		"api_type":   string(r.APIType),
	}
	maps.Copy(body, r.Extra)
	return body
}

// DelegationCredentials is the AWS credential block returned for APITypeAWS
type DelegationCredentials struct {
	AccessKeyId     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
	Expiration      string `json:"Expiration,omitempty"`
}

// DelegationResponse is the body returned from the /delegation endpoint
type DelegationResponse struct {
	oauth2.TokenResponse
	Credentials *DelegationCredentials `json:"Credentials,omitempty"`
}
