package providers

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

var _ Provider = (*UsernameProvider)(nil)

// UsernameProvider logs in with the resource owner password grant
type UsernameProvider struct {
	deps Deps
}

func NewUsernameProvider(deps Deps) *UsernameProvider {
	return &UsernameProvider{deps: deps}
}

func (p *UsernameProvider) Login(ctx context.Context, req Request) (*oauth2.TokenResponse, error) {
	username, password, err := resolveCredentials(ctx, p.deps.Prompter, req)
	if err != nil {
		return nil, err
	}

	p.deps.logger().Debug().Str("tenant", p.deps.Tenant.Name).Msg("password login")
	form := oauthmodel.TokenRequest{
		GrantType: oauth2.PasswordGrant,
		ClientID:  p.deps.ClientID,
		Username:  username,
		Password:  password,
		Scope:     p.deps.Tenant.Scope,
	}
	tokens, err := token.Exchange(ctx, p.deps.Transport, &transport.Request{
		Method: http.MethodPost,
		URL:    p.deps.Tenant.Endpoints.Token,
		Form:   form.Form(),
	})
	if err != nil {
		return nil, err
	}
	return finish(ctx, p.deps, req, tokens)
}
