package providers_test

import (
	"context"
	"net/http"
	"testing"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/providers"
	"github.com/stretchr/testify/require"
)

func TestUsernameProvider_PromptsOnlyForUsername(t *testing.T) {
	f := newFixture(hostedTenant(), prompt.Answers{"username": "jane"}, map[string]response{
		tokenURL: {body: `{"id_token":"T1","access_token":"A1","refresh_token":"R1"}`},
	})

	tokens, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{
		PromptUsername: true,
		Password:       "p",
	})
	require.NoError(t, err)
	require.Equal(t, "T1", tokens.Token())

	asked := f.prompter.Asked()
	require.Len(t, asked, 1)
	require.Equal(t, "username", asked[0].Name)

	req := f.transport.Requests()[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "password", req.Form.Get("grant_type"))
	require.Equal(t, "jane", req.Form.Get("username"))
	require.Equal(t, "p", req.Form.Get("password"))
	require.Equal(t, "client-1", req.Form.Get("client_id"))
	require.Equal(t, "openid offline_access", req.Form.Get("scope"))

	// not persisted unless asked
	require.Zero(t, f.store.Updates())
}

func TestUsernameProvider_EmptyPromptedUsername(t *testing.T) {
	f := newFixture(hostedTenant(), prompt.Answers{"username": ""}, nil)

	_, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{
		PromptUsername: true,
		Password:       "p",
	})
	require.ErrorIs(t, err, autherrors.ErrMissingCredential)
	require.EqualError(t, err, "Please specify a username.")
	require.Empty(t, f.transport.Requests())
}

func TestUsernameProvider_PasswordPromptIsHidden(t *testing.T) {
	f := newFixture(hostedTenant(), prompt.Answers{"password": "secret"}, map[string]response{
		tokenURL: {body: `{"id_token":"T1"}`},
	})

	_, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{Username: "jane"})
	require.NoError(t, err)

	asked := f.prompter.Asked()
	require.Len(t, asked, 1)
	require.Equal(t, prompt.KindPassword, asked[0].Kind)
}

func TestUsernameProvider_MissingPassword(t *testing.T) {
	f := newFixture(hostedTenant(), nil, nil)

	_, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{Username: "jane"})
	require.ErrorIs(t, err, autherrors.ErrMissingCredential)
	require.EqualError(t, err, "Please specify a password.")
}

func TestUsernameProvider_NoPromptWhenSupplied(t *testing.T) {
	f := newFixture(hostedTenant(), nil, map[string]response{
		tokenURL: {body: `{"id_token":"T1","access_token":"A1","refresh_token":"R1"}`},
	})

	_, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{
		Username: "jane",
		Password: "p",
		Store:    true,
	})
	require.NoError(t, err)
	require.Empty(t, f.prompter.Asked())

	record := f.store.Snapshot()
	require.Equal(t, "T1", record.IDToken)
	require.Equal(t, "T1", record.LegacyAccessToken)
	require.Equal(t, "A1", record.AccessToken)
	require.Equal(t, "R1", record.RefreshToken)
	require.Equal(t, 1, f.store.Updates())
}

func TestUsernameProvider_UpstreamError(t *testing.T) {
	f := newFixture(hostedTenant(), nil, map[string]response{
		tokenURL: {status: http.StatusForbidden, body: `{"error":"invalid_grant","error_description":"Wrong email or password."}`},
	})

	_, err := providers.NewUsernameProvider(f.deps).Login(context.Background(), providers.Request{
		Username: "jane",
		Password: "wrong",
		Store:    true,
	})
	require.ErrorIs(t, err, autherrors.ErrUpstream)
	require.EqualError(t, err, "Wrong email or password.")
	require.Zero(t, f.store.Updates())
}
