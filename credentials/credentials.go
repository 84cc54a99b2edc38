package credentials

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
)

// Source is the provider name reported on aws.Credentials
const Source = "IdentityDelegation"

// DefaultLifetime is assumed for credentials issued without an expiration
const DefaultLifetime = time.Hour

// Credentials are temporary AWS credentials issued for the session. They are never persisted.
type Credentials struct {
	AccessKeyID     string    `json:"accessKeyId"`
	SecretAccessKey string    `json:"secretAccessKey"`
	SessionToken    string    `json:"sessionToken"`
	Expires         time.Time `json:"expires,omitempty"` // zero when the provider did not say
}

// FromDelegation maps the delegation endpoint's credential block
func FromDelegation(c *oauthmodel.DelegationCredentials) *Credentials {
	creds := &Credentials{
		AccessKeyID:     c.AccessKeyId,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
	}
	if c.Expiration != "" {
		if t, err := time.Parse(time.RFC3339, c.Expiration); err == nil {
			creds.Expires = t
		}
	}
	return creds
}

// ToAWS converts to the SDK credential value
func (c *Credentials) ToAWS() aws.Credentials {
	return aws.Credentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Source:          Source,
		CanExpire:       !c.Expires.IsZero(),
		Expires:         c.Expires,
	}
}

// Retriever fetches a fresh set of credentials
type Retriever func(ctx context.Context) (*Credentials, error)

// NewProvider adapts a Retriever to the SDK. The result is cached by aws.CredentialsCache
// and only re-fetched once the credentials are about to expire. Credentials without an
// expiration are treated as expiring DefaultLifetime after retrieval.
func NewProvider(retrieve Retriever) *aws.CredentialsCache {
	return aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		creds, err := retrieve(ctx)
		if err != nil {
			return aws.Credentials{}, err
		}
		out := creds.ToAWS()
		if !out.CanExpire {
			out.CanExpire = true
			out.Expires = time.Now().Add(DefaultLifetime)
		}
		return out, nil
	}), func(o *aws.CredentialsCacheOptions) {
		o.ExpiryWindow = time.Minute
	})
}
