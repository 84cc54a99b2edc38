package identity_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-client/identity"
	"github.com/jrsteele09/go-auth-client/internal/tokentest"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_FreshTokenTwiceNoNetwork(t *testing.T) {
	ctx := context.Background()
	t1 := tokentest.ExpiringAt(t, testNow.Add(time.Hour), nil)
	h := newHarness(t, &sessions.Record{IDToken: t1, RefreshToken: "R1"}, nil)

	first, err := h.client.AccessToken(ctx)
	require.NoError(t, err)
	second, err := h.client.AccessToken(ctx)
	require.NoError(t, err)

	require.Equal(t, t1, first)
	require.Equal(t, first, second)
	require.Empty(t, h.transport.Requests())
}

func TestAccessToken_ExpiredTokenRefreshedWithRefreshToken(t *testing.T) {
	ctx := context.Background()
	t1 := tokentest.ExpiringAt(t, testNow.Add(-10*time.Second), nil)
	h := newHarness(t, &sessions.Record{IDToken: t1, RefreshToken: "R1"}, map[string]handler{
		tokenURL: reply(http.StatusOK, `{"id_token":"T2"}`),
	})

	got, err := h.client.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", got)

	requests := h.transport.Requests()
	require.Len(t, requests, 1)
	require.Equal(t, "refresh_token", requests[0].Form.Get("grant_type"))
	require.Equal(t, "R1", requests[0].Form.Get("refresh_token"))
	require.Equal(t, "client-1", requests[0].Form.Get("client_id"))

	record, err := h.store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", record.Token())
	require.Equal(t, "R1", record.RefreshToken)
}

func TestAccessToken_ConcurrentCallersShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	t1 := tokentest.ExpiringAt(t, testNow.Add(-time.Second), nil)
	t2 := tokentest.ExpiringAt(t, testNow.Add(time.Hour), map[string]any{"sub": "user-2"})
	h := newHarness(t, &sessions.Record{IDToken: t1, RefreshToken: "R1"}, map[string]handler{
		tokenURL: func(*transport.Request) (*transport.Response, error) {
			time.Sleep(50 * time.Millisecond)
			return &transport.Response{Status: http.StatusOK, Body: []byte(`{"id_token":"` + t2 + `"}`)}, nil
		},
	})

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = h.client.AccessToken(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, t2, results[i])
	}
	require.Len(t, h.transport.Requests(), 1)
	require.Equal(t, 1, h.store.Updates())
}

func TestAccessToken_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t1 := tokentest.ExpiringAt(t, testNow.Add(-time.Second), nil)
	t2 := tokentest.ExpiringAt(t, testNow.Add(time.Hour), map[string]any{"sub": "user-2"})
	started := make(chan struct{})
	release := make(chan struct{})
	h := newHarness(t, &sessions.Record{IDToken: t1, RefreshToken: "R1"}, map[string]handler{
		tokenURL: func(*transport.Request) (*transport.Response, error) {
			close(started)
			<-release
			return &transport.Response{Status: http.StatusOK, Body: []byte(`{"id_token":"` + t2 + `"}`)}, nil
		},
	})

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := h.client.AccessToken(leaderCtx)
		leaderErr <- err
	}()
	<-started

	type result struct {
		token string
		err   error
	}
	follower := make(chan result, 1)
	go func() {
		tok, err := h.client.AccessToken(context.Background())
		follower <- result{tok, err}
	}()

	cancel()
	require.ErrorIs(t, <-leaderErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-follower
	require.NoError(t, got.err)
	require.Equal(t, t2, got.token)
	require.Len(t, h.transport.Requests(), 1)

	record, err := h.store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, t2, record.Token())
}

func TestAccessToken_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		h := newHarness(t, nil, nil)
		_, err := h.client.AccessToken(ctx)
		require.ErrorIs(t, err, identity.ErrUnauthenticated)
	})

	t.Run("expired without refresh token", func(t *testing.T) {
		t1 := tokentest.ExpiringAt(t, testNow.Add(-time.Second), nil)
		h := newHarness(t, &sessions.Record{IDToken: t1}, nil)
		_, err := h.client.AccessToken(ctx)
		require.ErrorIs(t, err, identity.ErrExpired)
		require.Empty(t, h.transport.Requests())
	})

	t.Run("malformed", func(t *testing.T) {
		h := newHarness(t, &sessions.Record{IDToken: "not-a-jwt"}, nil)
		_, err := h.client.AccessToken(ctx)
		require.ErrorIs(t, err, identity.ErrMalformedToken)
	})
}

func TestAccessToken_EarlyRefreshPolicy(t *testing.T) {
	ctx := context.Background()
	t1 := tokentest.ExpiringAt(t, testNow.Add(time.Minute), nil)
	h := newHarness(t, &sessions.Record{IDToken: t1}, map[string]handler{
		delegationURL: reply(http.StatusOK, `{"id_token":"T2"}`),
	}, withOptions(identity.WithPolicy(token.Policy{DefaultRefreshBefore: 5 * time.Minute})))

	got, err := h.client.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", got)
	require.Len(t, h.transport.RequestsTo(delegationURL), 1)
}

func TestAccessToken_FreshTokenNeedsNoClientID(t *testing.T) {
	ctx := context.Background()
	tenant := acmeTenant()
	tenant.ClientID = ""
	t1 := tokentest.ExpiringAt(t, testNow.Add(time.Hour), nil)
	h := newHarness(t, &sessions.Record{IDToken: t1}, nil, withTenants(tenant))

	got, err := h.client.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, t1, got)
}

func TestAccessToken_RefreshNeedsClientID(t *testing.T) {
	ctx := context.Background()
	tenant := acmeTenant()
	tenant.ClientID = ""
	t1 := tokentest.ExpiringAt(t, testNow.Add(-time.Hour), nil)
	h := newHarness(t, &sessions.Record{IDToken: t1, RefreshToken: "R1"}, nil, withTenants(tenant))

	_, err := h.client.AccessToken(ctx)
	require.ErrorIs(t, err, identity.ErrConfiguration)
	require.Empty(t, h.transport.Requests())
}
