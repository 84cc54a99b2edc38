package identity

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jrsteele09/go-auth-client/credentials"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/transport"
)

// Parameters identifying the calling service and tenant to downstream services
const (
	serviceParam = "bmService"
	tenantParam  = "bmTenant"
)

const jwtExpired = "jwt expired"

// AssumeRole exchanges the session token for temporary AWS credentials. extra is merged
// into the delegation request.
func (c *Client) AssumeRole(ctx context.Context, extra map[string]any) (*credentials.Credentials, error) {
	idToken, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	record, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := c.tenantFor(record)
	if err != nil {
		return nil, err
	}
	clientID, err := c.clientID(ctx, tenant)
	if err != nil {
		return nil, err
	}

	params := maps.Clone(extra)
	if params == nil {
		params = map[string]any{}
	}
	params[serviceParam] = c.name
	if record.Tenants.Current != "" {
		params[tenantParam] = record.Tenants.Current
	}

	req := oauthmodel.DelegationRequest{
		ClientID: clientID,
		IDToken:  idToken,
		Scope:    oauth2.ScopeOpenID,
		APIType:  oauth2.APITypeAWS,
		Extra:    params,
	}
	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.Delegation,
		JSON:   req.Body(),
	})
	if err != nil {
		return nil, err
	}

	var out oauthmodel.DelegationResponse
	if err := resp.DecodeJSON(&out); err != nil {
		// some failures come straight from AWS as a bare string
		return nil, autherrors.Upstream(string(resp.Body))
	}
	if out.Failed() {
		if out.ErrorDescription == jwtExpired {
			return nil, autherrors.New(autherrors.ErrExpired, "Unauthorised, your access token has expired. Please login again.")
		}
		return nil, autherrors.Upstream(out.Description())
	}
	if out.Credentials == nil {
		return nil, autherrors.Upstream(string(resp.Body))
	}
	return credentials.FromDelegation(out.Credentials), nil
}

// AWSCredentialsProvider returns an aws.CredentialsProvider backed by AssumeRole. Credentials
// are cached until shortly before they expire.
func (c *Client) AWSCredentialsProvider(extra map[string]any) aws.CredentialsProvider {
	return credentials.NewProvider(func(ctx context.Context) (*credentials.Credentials, error) {
		return c.AssumeRole(ctx, extra)
	})
}

type settingsError struct {
	Message string `json:"message"`
}

// ServiceSettings fetches the settings document named by the token's serviceSettingsUrl claim
func (c *Client) ServiceSettings(ctx context.Context, extra map[string]string) (map[string]any, error) {
	idToken, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := c.decoder.Decode(idToken)
	if err != nil {
		return nil, err
	}
	if claims.ServiceSettingsURL == "" {
		return nil, autherrors.New(autherrors.ErrMalformedToken, "Malformed access token. Please login again.")
	}

	query := url.Values{}
	for k, v := range extra {
		query.Set(k, v)
	}
	query.Set(serviceParam, c.name)

	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    claims.ServiceSettingsURL,
		Query:  query,
		Bearer: idToken,
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		var body settingsError
		if err := resp.DecodeJSON(&body); err != nil || body.Message == "" {
			body.Message = fmt.Sprintf("status %d", resp.Status)
		}
		return nil, autherrors.Upstream("Could not find Service Settings: " + body.Message)
	}

	settings := map[string]any{}
	if err := resp.DecodeJSON(&settings); err != nil {
		return nil, autherrors.WithCause(autherrors.ErrUpstream, err, "could not decode service settings")
	}
	return settings, nil
}
