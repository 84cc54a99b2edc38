package token

import (
	"context"
	"fmt"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/transport"
)

// Exchange performs a request against a token issuing endpoint (token, delegation or
// passwordless) and decodes the token set. Error payloads become ErrUpstream carrying the
// provider's description; network failures are returned as ErrTransport.
func Exchange(ctx context.Context, t transport.Transport, req *transport.Request) (*oauth2.TokenResponse, error) {
	resp, err := t.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	tokens := &oauth2.TokenResponse{}
	if err := resp.DecodeJSON(tokens); err != nil {
		if !resp.IsSuccess() {
			return nil, autherrors.Upstream(fmt.Sprintf("%s responded with status %d: %s", req.URL, resp.Status, resp.Body))
		}
		return nil, autherrors.WithCause(autherrors.ErrUpstream, err, "could not decode the identity provider response")
	}
	if tokens.Failed() {
		return nil, autherrors.Upstream(tokens.Description())
	}
	if !resp.IsSuccess() {
		return nil, autherrors.Upstream(fmt.Sprintf("%s responded with status %d", req.URL, resp.Status))
	}
	if tokens.IDToken == "" {
		return nil, autherrors.Upstream("the identity provider did not return an id_token")
	}
	return tokens, nil
}
