package identity_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-client/browser"
	"github.com/jrsteele09/go-auth-client/clients"
	"github.com/jrsteele09/go-auth-client/identity"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/prompt/promptfake"
	"github.com/jrsteele09/go-auth-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-auth-client/sessions/repofakes"
	"github.com/jrsteele09/go-auth-client/tenants"
	tenantrepofakes "github.com/jrsteele09/go-auth-client/tenants/repofakes"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	clientName = "@oneblink/cli"

	tokenURL      = "https://login.acme.test/oauth/token"
	delegationURL = "https://login.acme.test/delegation"
	revokeURL     = "https://login.acme.test/oauth/revoke"
	logoutURL     = "https://login.acme.test/v2/logout"
	settingsURL   = "https://settings.acme.test/v1/settings"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type handler func(req *transport.Request) (*transport.Response, error)

func reply(status int, body string) handler {
	return func(*transport.Request) (*transport.Response, error) {
		return &transport.Response{Status: status, Body: []byte(body)}, nil
	}
}

// routingTransport dispatches on URL and records every request
type routingTransport struct {
	lock     sync.Mutex
	routes   map[string]handler
	requests []*transport.Request
}

func (rt *routingTransport) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	rt.lock.Lock()
	rt.requests = append(rt.requests, req)
	h, ok := rt.routes[req.URL]
	rt.lock.Unlock()
	if !ok {
		return &transport.Response{Status: http.StatusNotFound, Body: []byte(`{"error":"not_found"}`)}, nil
	}
	return h(req)
}

func (rt *routingTransport) Requests() []*transport.Request {
	rt.lock.Lock()
	defer rt.lock.Unlock()
	return append([]*transport.Request(nil), rt.requests...)
}

func (rt *routingTransport) RequestsTo(url string) []*transport.Request {
	var matched []*transport.Request
	for _, r := range rt.Requests() {
		if r.URL == url {
			matched = append(matched, r)
		}
	}
	return matched
}

type harness struct {
	client    *identity.Client
	store     *fakesessionrepo.FakeSessionRepo
	transport *routingTransport
	prompter  *promptfake.FakePrompter
	opener    *browser.Recorder
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	answers prompt.Answers
	tenants []*tenants.Tenant
	opts    []identity.Option
}

func withAnswers(a prompt.Answers) harnessOption {
	return func(c *harnessConfig) { c.answers = a }
}

func withTenants(t ...*tenants.Tenant) harnessOption {
	return func(c *harnessConfig) { c.tenants = t }
}

func withOptions(opts ...identity.Option) harnessOption {
	return func(c *harnessConfig) { c.opts = append(c.opts, opts...) }
}

func acmeTenant() *tenants.Tenant {
	return &tenants.Tenant{
		Name:        "acme",
		LoginURL:    "https://login.acme.test",
		ClientID:    "client-1",
		CallbackURL: "https://localhost:3000",
	}
}

func newHarness(t *testing.T, record *sessions.Record, routes map[string]handler, opts ...harnessOption) *harness {
	t.Helper()
	cfg := &harnessConfig{tenants: []*tenants.Tenant{acmeTenant()}}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &harness{
		store:     fakesessionrepo.NewFakeSessionRepo(record),
		transport: &routingTransport{routes: routes},
		prompter:  promptfake.NewFakePrompter(cfg.answers),
		opener:    &browser.Recorder{},
	}
	clientOpts := append([]identity.Option{
		identity.WithTenants(tenantrepofakes.NewFakeTenantRepo(cfg.tenants...)),
		identity.WithClients(clients.NewStaticRepo(nil)),
		identity.WithTransport(h.transport),
		identity.WithPrompter(h.prompter),
		identity.WithBrowser(h.opener),
		identity.WithNowFunc(func() time.Time { return testNow }),
		identity.WithLogger(zerolog.Nop()),
	}, cfg.opts...)

	client, err := identity.New(clientName, h.store, clientOpts...)
	require.NoError(t, err)
	h.client = client
	return h
}
