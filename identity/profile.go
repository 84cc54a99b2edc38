package identity

import (
	"context"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"golang.org/x/oauth2"
)

// Profile is the user's profile as reported by the tenant's userinfo endpoint
type Profile struct {
	Subject       string         `json:"sub"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"email_verified,omitempty"`
	Name          string         `json:"name,omitempty"`
	Picture       string         `json:"picture,omitempty"`
	Claims        map[string]any `json:"-"`
}

// Profile fetches the profile for accessToken, or for the stored session when it is empty
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	if accessToken == "" {
		idToken, err := c.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		record, err := c.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		accessToken = record.AccessToken
		if accessToken == "" {
			accessToken = idToken
		}
	}

	tenant, err := c.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	if c.httpClient != nil {
		ctx = oidc.ClientContext(ctx, c.httpClient)
	}
	provider := (&oidc.ProviderConfig{
		IssuerURL:   tenant.LoginURL,
		AuthURL:     tenant.Endpoints.Authorize,
		TokenURL:    tenant.Endpoints.Token,
		UserInfoURL: tenant.Endpoints.UserInfo,
	}).NewProvider(ctx)

	info, err := provider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	if err != nil {
		var urlErr *url.Error
		if autherrors.As(err, &urlErr) {
			return nil, autherrors.Transport(err)
		}
		return nil, autherrors.WithCause(autherrors.ErrUpstream, err, "Unauthorised, your access token may have expired. Please login again.")
	}

	profile := &Profile{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
	}
	if err := info.Claims(&profile.Claims); err != nil {
		return nil, autherrors.WithCause(autherrors.ErrUpstream, err, "could not decode the user profile")
	}
	profile.Name, _ = profile.Claims["name"].(string)
	profile.Picture, _ = profile.Claims["picture"].(string)
	return profile, nil
}
