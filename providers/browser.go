package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-auth-client/browser"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

const codeQuestion = "code"

var _ Provider = (*BrowserProvider)(nil)

// BrowserProvider runs the authorization code flow with PKCE. The callback page shows the
// code to the user, who pastes it back into the terminal.
type BrowserProvider struct {
	deps   Deps
	opener browser.Opener
}

func NewBrowserProvider(deps Deps, opener browser.Opener) *BrowserProvider {
	if opener == nil {
		opener = browser.System{}
	}
	return &BrowserProvider{deps: deps, opener: opener}
}

func (p *BrowserProvider) Login(ctx context.Context, req Request) (*oauth2.TokenResponse, error) {
	tenant := p.deps.Tenant
	params := oauthmodel.AuthorizationParameters{
		AuthorizeURL: tenant.Endpoints.Authorize,
		ClientID:     p.deps.ClientID,
		RedirectURI:  tenant.CallbackURL,
		Scope:        tenant.Scope,
		CodeVerifier: oauthmodel.NewCodeVerifier(),
	}
	authorizeURL, err := params.URL()
	if err != nil {
		return nil, autherrors.WithCause(autherrors.ErrConfiguration, err, "cannot start a browser login: "+err.Error())
	}

	if err := p.opener.Open(authorizeURL); err != nil {
		p.deps.logger().Warn().Err(err).Msg("could not open a browser")
	}
	fmt.Fprintf(p.deps.out(), "A browser has been opened to allow you to login. Once logged in, you will be granted a verification code.\nIf no browser opened, visit:\n\n  %s\n\n", authorizeURL)

	answers, err := p.deps.Prompter.Ask(ctx, []prompt.Question{{
		Name:    codeQuestion,
		Message: "Please enter the code: ",
		Kind:    prompt.KindText,
	}})
	if err != nil {
		return nil, err
	}
	code := answers[codeQuestion]
	if code == "" {
		return nil, autherrors.New(autherrors.ErrMissingCredential, "Please specify the verification code.")
	}

	form := oauthmodel.TokenRequest{
		GrantType:    oauth2.AuthorizationCodeGrant,
		ClientID:     p.deps.ClientID,
		Code:         code,
		CodeVerifier: params.CodeVerifier,
		RedirectURI:  tenant.CallbackURL,
	}
	tokens, err := token.Exchange(ctx, p.deps.Transport, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.Token,
		Form:   form.Form(),
	})
	if err != nil {
		return nil, err
	}
	p.deps.logger().Info().Str("tenant", tenant.Name).Msg("browser login complete")
	return finish(ctx, p.deps, req, tokens)
}
