package providers

import (
	"context"
	"io"
	"os"

	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/tenants"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Request carries the caller supplied login input. Anything missing is prompted for.
type Request struct {
	Username string
	Password string
	Contact  string // phone number or email address for passwordless logins

	// PromptUsername / PromptContact force a prompt even when a value was supplied
	PromptUsername bool
	PromptContact  bool

	// Store persists the issued tokens through the session store
	Store bool
}

// Provider obtains a brand new token set from the identity provider
type Provider interface {
	Login(ctx context.Context, req Request) (*oauth2.TokenResponse, error)
}

// Deps are the collaborators every provider needs
type Deps struct {
	Tenant    *tenants.Tenant
	ClientID  string
	Store     sessions.Store
	Transport transport.Transport
	Prompter  prompt.Prompter
	Logger    *zerolog.Logger // defaults to the global zerolog logger
	Out       io.Writer       // user facing instructions, defaults to stderr
}

func (d Deps) out() io.Writer {
	if d.Out == nil {
		return os.Stderr
	}
	return d.Out
}

func (d Deps) logger() *zerolog.Logger {
	if d.Logger == nil {
		return &log.Logger
	}
	return d.Logger
}

// Persist writes a freshly issued token set in a single store update. The id token is also
// written to the legacy field read by older clients.
func Persist(ctx context.Context, store sessions.Store, tokens *oauth2.TokenResponse) error {
	_, err := store.Update(ctx, func(r *sessions.Record) error {
		r.IDToken = tokens.IDToken
		r.LegacyAccessToken = tokens.IDToken
		r.AccessToken = tokens.AccessToken
		r.RefreshToken = tokens.RefreshToken
		return nil
	})
	return err
}

func finish(ctx context.Context, d Deps, req Request, tokens *oauth2.TokenResponse) (*oauth2.TokenResponse, error) {
	if req.Store {
		if err := Persist(ctx, d.Store, tokens); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}
