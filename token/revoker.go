package token

import (
	"context"
	"net/http"
	"net/url"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/tenants"
	"github.com/jrsteele09/go-auth-client/transport"
)

// Revoker ends the session on the identity provider's side
type Revoker struct {
	transport transport.Transport
}

func NewRevoker(t transport.Transport) *Revoker {
	return &Revoker{transport: t}
}

// Logout calls the tenant's logout endpoint
func (r *Revoker) Logout(ctx context.Context, tenant *tenants.Tenant, clientID string) error {
	if tenant.Endpoints.Logout == "" {
		return nil
	}
	resp, err := r.transport.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    tenant.Endpoints.Logout,
		Query:  url.Values{"client_id": {clientID}},
	})
	if err != nil {
		return err
	}
	if resp.Status >= http.StatusBadRequest {
		return autherrors.Newf(autherrors.ErrUpstream, "logout responded with status %d", resp.Status)
	}
	return nil
}

// Revoke invalidates a refresh token
func (r *Revoker) Revoke(ctx context.Context, tenant *tenants.Tenant, clientID, refreshToken string) error {
	if refreshToken == "" || tenant.Endpoints.Revoke == "" {
		return nil
	}
	req := oauthmodel.RevokeRequest{ClientID: clientID, Token: refreshToken}
	resp, err := r.transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.Revoke,
		Form:   req.Form(),
	})
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}
	var payload oauth2.ErrorResponse
	if err := resp.DecodeJSON(&payload); err == nil && payload.Failed() {
		return autherrors.Upstream(payload.Description())
	}
	return autherrors.Newf(autherrors.ErrUpstream, "revoke responded with status %d", resp.Status)
}
