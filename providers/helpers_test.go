package providers_test

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/prompt/promptfake"
	"github.com/jrsteele09/go-auth-client/providers"
	"github.com/jrsteele09/go-auth-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-auth-client/sessions/repofakes"
	"github.com/jrsteele09/go-auth-client/tenants"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog"
)

type response struct {
	status int
	body   string
}

// scriptedTransport replies to each URL with a fixed response and records requests in order
type scriptedTransport struct {
	lock      sync.Mutex
	responses map[string]response
	requests  []*transport.Request
}

func newScriptedTransport(responses map[string]response) *scriptedTransport {
	return &scriptedTransport{responses: responses}
}

func (s *scriptedTransport) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.requests = append(s.requests, req)
	r, ok := s.responses[req.URL]
	if !ok {
		return &transport.Response{Status: http.StatusNotFound, Body: []byte(`{"error":"not_found"}`)}, nil
	}
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return &transport.Response{Status: r.status, Body: []byte(r.body)}, nil
}

func (s *scriptedTransport) Requests() []*transport.Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]*transport.Request(nil), s.requests...)
}

type fixture struct {
	deps      providers.Deps
	store     *fakesessionrepo.FakeSessionRepo
	prompter  *promptfake.FakePrompter
	transport *scriptedTransport
	out       *bytes.Buffer
}

func newFixture(tenant tenants.Tenant, answers prompt.Answers, responses map[string]response) *fixture {
	f := &fixture{
		store:     fakesessionrepo.NewFakeSessionRepo(&sessions.Record{}),
		prompter:  promptfake.NewFakePrompter(answers),
		transport: newScriptedTransport(responses),
		out:       &bytes.Buffer{},
	}
	nop := zerolog.Nop()
	f.deps = providers.Deps{
		Tenant:    tenant.WithDefaults(),
		ClientID:  "client-1",
		Store:     f.store,
		Transport: f.transport,
		Prompter:  f.prompter,
		Logger:    &nop,
		Out:       f.out,
	}
	return f
}

func hostedTenant() tenants.Tenant {
	return tenants.Tenant{
		Name:        "acme",
		LoginURL:    "https://login.acme.test",
		CallbackURL: "https://localhost:3000",
	}
}

const tokenURL = "https://login.acme.test/oauth/token"
