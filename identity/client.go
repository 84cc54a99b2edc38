package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-client/browser"
	"github.com/jrsteele09/go-auth-client/clients"
	"github.com/jrsteele09/go-auth-client/internal/config"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/sessions/keyringstore"
	"github.com/jrsteele09/go-auth-client/tenants"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Client is the entry point for logging in a named client and using its session.
// All state lives in the session store; a Client is safe for concurrent use.
type Client struct {
	name string

	cfg        config.Config
	store      sessions.Store
	tenants    tenants.Repo
	clients    clients.Repo
	transport  transport.Transport
	httpClient *http.Client
	prompter   prompt.Prompter
	opener     browser.Opener
	cognito    token.CognitoFactory
	decoder    token.Decoder
	policy     *token.Policy
	nowFunc    func() time.Time
	logger     zerolog.Logger

	refresher *token.Refresher
	revoker   *token.Revoker
	refreshes singleflight.Group
}

type Option func(*Client)

func WithConfig(cfg config.Config) Option {
	return func(c *Client) {
		c.cfg = cfg
	}
}

func WithTenants(repo tenants.Repo) Option {
	return func(c *Client) {
		c.tenants = repo
	}
}

func WithClients(repo clients.Repo) Option {
	return func(c *Client) {
		c.clients = repo
	}
}

func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient sets the HTTP client used by the default transport and for userinfo requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithPrompter(p prompt.Prompter) Option {
	return func(c *Client) {
		c.prompter = p
	}
}

func WithBrowser(o browser.Opener) Option {
	return func(c *Client) {
		c.opener = o
	}
}

func WithCognito(factory token.CognitoFactory) Option {
	return func(c *Client) {
		c.cognito = factory
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = now
	}
}

func WithPolicy(p token.Policy) Option {
	return func(c *Client) {
		c.policy = &p
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for clientName (e.g. "@oneblink/cli"). A nil store selects the
// store configured by IDENTITY_STORE.
func New(clientName string, store sessions.Store, opts ...Option) (*Client, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, autherrors.New(autherrors.ErrInvalidInput, "a client name is required")
	}

	c := &Client{
		name:    clientName,
		store:   store,
		nowFunc: time.Now,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cfg == nil {
		c.cfg = config.New()
	}
	if c.store == nil {
		s, err := newStore(clientName, c.cfg)
		if err != nil {
			return nil, err
		}
		c.store = s
	}
	if c.transport == nil {
		c.transport = transport.New(
			transport.WithTimeout(c.cfg.GetHTTPTimeout()),
			transport.WithHTTPClient(c.httpClient),
			transport.WithLogger(c.logger),
		)
	}
	if c.tenants == nil {
		c.tenants = tenants.NewRegistry(c.cfg)
	}
	if c.clients == nil {
		c.clients = clients.NewStaticRepo(nil)
		if url := c.cfg.GetClientsURL(); url != "" {
			c.clients = clients.NewRemoteRepo(url, c.transport, c.clients)
		}
	}
	if c.prompter == nil {
		c.prompter = prompt.NewHuhPrompter()
	}
	if c.opener == nil {
		c.opener = browser.System{}
	}
	if c.cognito == nil {
		c.cognito = token.NewCognitoClient
	}
	if c.decoder == nil {
		c.decoder = jwt.NewInspector()
	}
	policy := token.NewPolicy(c.cfg)
	if c.policy != nil {
		policy = *c.policy
	}

	c.refresher = token.NewRefresher(c.store, c.decoder, c.transport,
		token.WithPolicy(policy),
		token.WithNowFunc(c.nowFunc),
		token.WithCognito(c.cognito),
		token.WithLogger(c.logger),
	)
	c.revoker = token.NewRevoker(c.transport)
	return c, nil
}

func newStore(clientName string, cfg config.StoreConfig) (sessions.Store, error) {
	if cfg.GetStoreBackend() == config.StoreBackendKeyring {
		return keyringstore.New(clientName)
	}
	s, err := sessions.NewFileStore(clientName, sessions.WithDir(cfg.GetConfigDir()))
	if err != nil {
		return nil, errors.Wrap(err, "identity.New")
	}
	return s, nil
}

// Name returns the client name the session belongs to
func (c *Client) Name() string {
	return c.name
}

// currentTenant resolves the tenant selected in the session record
func (c *Client) currentTenant(ctx context.Context) (*tenants.Tenant, error) {
	record, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.tenantFor(record)
}

func (c *Client) tenantFor(record *sessions.Record) (*tenants.Tenant, error) {
	return c.tenants.Get(record.Tenants.Current)
}

// clientID prefers an id configured on the tenant over the client registry
func (c *Client) clientID(ctx context.Context, tenant *tenants.Tenant) (string, error) {
	if tenant.ClientID != "" {
		return tenant.ClientID, nil
	}
	cl, err := c.clients.Get(ctx, c.name)
	if err != nil {
		return "", err
	}
	return cl.ID, nil
}
