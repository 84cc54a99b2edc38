package identity

import (
	"context"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/providers"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/tenants"
)

// Login preferences remembered in the session record
const (
	PreferenceUsername = "username"
	PreferenceEmail    = "email"
	PreferenceSMS      = "sms"
	PreferenceBrowser  = "browser"
)

const preferenceQuestion = "loginPreference"

// LoginOptions select the login flow. With nothing set the browser flow is used.
type LoginOptions struct {
	// Username selects the username/password flow; UsernamePrompt asks for it instead
	Username       string
	UsernamePrompt bool
	Password       string

	// SMS / Email select a passwordless flow for the given contact, or prompt for it
	SMS         string
	SMSPrompt   bool
	Email       string
	EmailPrompt bool

	// UsePreference uses the remembered login preference, asking for one if none is stored
	UsePreference bool

	// StoreJWT persists the issued tokens. Nil means true.
	StoreJWT *bool
}

// Login runs the selected flow and returns the new session token
func (c *Client) Login(ctx context.Context, opts LoginOptions) (string, error) {
	if opts.UsePreference {
		pref, err := c.LoginPreference(ctx)
		if err != nil {
			return "", err
		}
		opts = opts.withPreference(pref)
	}

	record, err := c.store.Load(ctx)
	if err != nil {
		return "", err
	}
	tenant, err := c.tenantFor(record)
	if err != nil {
		return "", err
	}
	clientID, err := c.clientID(ctx, tenant)
	if err != nil {
		return "", err
	}

	provider, req := c.selectProvider(tenant, clientID, opts)
	tokens, err := provider.Login(ctx, req)
	if err != nil {
		return "", err
	}
	c.logger.Info().Str("client", c.name).Str("tenant", tenant.Name).Bool("stored", req.Store).Msg("logged in")
	return tokens.Token(), nil
}

func (c *Client) selectProvider(tenant *tenants.Tenant, clientID string, opts LoginOptions) (providers.Provider, providers.Request) {
	deps := providers.Deps{
		Tenant:    tenant,
		ClientID:  clientID,
		Store:     c.store,
		Transport: c.transport,
		Prompter:  c.prompter,
		Logger:    &c.logger,
	}
	req := providers.Request{
		Store: opts.StoreJWT == nil || utils.Value(opts.StoreJWT),
	}

	switch {
	case opts.Username != "" || opts.UsernamePrompt:
		req.Username, req.Password, req.PromptUsername = opts.Username, opts.Password, opts.UsernamePrompt
		if tenant.IsCognito() {
			return providers.NewCognitoProvider(deps, c.cognito), req
		}
		return providers.NewUsernameProvider(deps), req
	case opts.SMS != "" || opts.SMSPrompt:
		req.Contact, req.PromptContact = opts.SMS, opts.SMSPrompt
		return providers.NewPasswordlessProvider(deps, oauth2.SMSConnection), req
	case opts.Email != "" || opts.EmailPrompt:
		req.Contact, req.PromptContact = opts.Email, opts.EmailPrompt
		return providers.NewPasswordlessProvider(deps, oauth2.EmailConnection), req
	default:
		return providers.NewBrowserProvider(deps, c.opener), req
	}
}

func (o LoginOptions) withPreference(pref string) LoginOptions {
	switch pref {
	case PreferenceUsername:
		o.UsernamePrompt = o.Username == ""
	case PreferenceSMS:
		o.SMSPrompt = o.SMS == ""
	case PreferenceEmail:
		o.EmailPrompt = o.Email == ""
	}
	return o
}

// LoginPreference returns the remembered login preference, asking for and storing one
// when none has been chosen yet
func (c *Client) LoginPreference(ctx context.Context) (string, error) {
	record, err := c.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if record.LoginPreference != "" {
		return record.LoginPreference, nil
	}

	answers, err := c.prompter.Ask(ctx, []prompt.Question{{
		Name:    preferenceQuestion,
		Message: "Please select a login preference: ",
		Kind:    prompt.KindChoice,
		Choices: []prompt.Choice{
			{Label: "Username and Password", Value: PreferenceUsername},
			{Label: "Passwordless with Email", Value: PreferenceEmail},
			{Label: "Passwordless with SMS", Value: PreferenceSMS},
			{Label: "Social account login e.g. Google or GitHub", Value: PreferenceBrowser},
		},
	}})
	if err != nil {
		return "", err
	}
	pref := answers[preferenceQuestion]
	switch pref {
	case PreferenceUsername, PreferenceEmail, PreferenceSMS, PreferenceBrowser:
	default:
		return "", autherrors.Newf(autherrors.ErrInvalidInput, "unknown login preference %q", pref)
	}

	if _, err := c.store.Update(ctx, func(r *sessions.Record) error {
		r.LoginPreference = pref
		return nil
	}); err != nil {
		return "", err
	}
	return pref, nil
}
