package providers

import (
	"context"
	"fmt"
	"net/http"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

// connectionMissing is the provider's description when a passwordless connection is not
// enabled for the client
const connectionMissing = "Connection does not exist"

const contactQuestion = "contact"

var _ Provider = (*PasswordlessProvider)(nil)

// PasswordlessProvider sends a one time code by SMS or email and exchanges it for tokens
type PasswordlessProvider struct {
	deps       Deps
	connection oauth2.Connection
}

func NewPasswordlessProvider(deps Deps, connection oauth2.Connection) *PasswordlessProvider {
	return &PasswordlessProvider{deps: deps, connection: connection}
}

func (p *PasswordlessProvider) Login(ctx context.Context, req Request) (*oauth2.TokenResponse, error) {
	tenant := p.deps.Tenant
	if tenant.Endpoints.PasswordlessStart == "" || tenant.Endpoints.PasswordlessToken == "" {
		return nil, p.unsupported()
	}

	contact, err := p.resolveContact(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := p.start(ctx, contact); err != nil {
		return nil, err
	}

	answers, err := p.deps.Prompter.Ask(ctx, []prompt.Question{{
		Name:    codeQuestion,
		Message: fmt.Sprintf("Please check your %s and enter the verification code: ", p.medium()),
		Kind:    prompt.KindText,
	}})
	if err != nil {
		return nil, err
	}
	code := answers[codeQuestion]
	if code == "" {
		return nil, autherrors.New(autherrors.ErrMissingCredential, "Please specify the verification code.")
	}

	tokens, err := token.Exchange(ctx, p.deps.Transport, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.PasswordlessToken,
		JSON: oauthmodel.PasswordlessTokenRequest{
			GrantType: oauth2.PasswordlessOTPGrant,
			ClientID:  p.deps.ClientID,
			Username:  contact,
			OTP:       code,
			Realm:     p.connection,
			Scope:     tenant.Scope,
		},
	})
	if err != nil {
		return nil, err
	}
	return finish(ctx, p.deps, req, tokens)
}

func (p *PasswordlessProvider) resolveContact(ctx context.Context, req Request) (string, error) {
	contact := req.Contact
	if req.PromptContact || contact == "" {
		message := "Phone Number: "
		if p.connection == oauth2.EmailConnection {
			message = "Email Address: "
		}
		answers, err := p.deps.Prompter.Ask(ctx, []prompt.Question{{
			Name:    contactQuestion,
			Message: message,
			Kind:    prompt.KindText,
		}})
		if err != nil {
			return "", err
		}
		contact = answers[contactQuestion]
	}
	if contact == "" {
		if p.connection == oauth2.EmailConnection {
			return "", autherrors.New(autherrors.ErrMissingCredential, "Please specify an email address to send verification code to.")
		}
		return "", autherrors.New(autherrors.ErrMissingCredential, "Please specify a phone number to send verification code to.")
	}
	return contact, nil
}

func (p *PasswordlessProvider) start(ctx context.Context, contact string) error {
	resp, err := p.deps.Transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    p.deps.Tenant.Endpoints.PasswordlessStart,
		JSON:   oauthmodel.NewPasswordlessStartRequest(p.deps.ClientID, p.connection, contact),
	})
	if err != nil {
		return err
	}

	var payload oauth2.ErrorResponse
	if err := resp.DecodeJSON(&payload); err != nil && !resp.IsSuccess() {
		return autherrors.Upstream(fmt.Sprintf("passwordless start responded with status %d", resp.Status))
	}
	switch {
	case payload.ErrorDescription == connectionMissing:
		return p.unsupported()
	case payload.Failed():
		return autherrors.Upstream(payload.Description())
	case !resp.IsSuccess():
		return autherrors.Upstream(fmt.Sprintf("passwordless start responded with status %d", resp.Status))
	}
	p.deps.logger().Debug().Str("connection", string(p.connection)).Msg("verification code sent")
	return nil
}

func (p *PasswordlessProvider) unsupported() error {
	return autherrors.Newf(autherrors.ErrUnsupportedConnection,
		"This service does not provide %s driven passwordless authentication. Please use another type of authentication to login.",
		p.label())
}

func (p *PasswordlessProvider) medium() string {
	if p.connection == oauth2.EmailConnection {
		return "email"
	}
	return "phone"
}

func (p *PasswordlessProvider) label() string {
	if p.connection == oauth2.EmailConnection {
		return "Email"
	}
	return "SMS"
}
