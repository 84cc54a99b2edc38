package tenants

import (
	"sort"

	"github.com/jrsteele09/go-auth-client/internal/config"
)

// Built-in tenant names
const (
	OneBlink    = "oneblink"
	CivicPlus   = "civicplus"
	BlinkMobile = "blinkmobile"

	DefaultTenant = OneBlink
)

var builtIns = map[string]Tenant{
	OneBlink: {
		Name:        OneBlink,
		Kind:        KindCognito,
		LoginURL:    "https://login.oneblink.io",
		APIOrigin:   "https://auth-api.oneblink.io",
		CallbackURL: "https://console.oneblink.io/cli-tools-callback",
		Region:      "ap-southeast-2",
	},
	CivicPlus: {
		Name:        CivicPlus,
		Kind:        KindCognito,
		LoginURL:    "https://login.transform.civicplus.com",
		APIOrigin:   "https://auth-api.transform.civicplus.com",
		CallbackURL: "https://transform.civicplus.com/cli-tools-callback",
		Region:      "us-east-2",
	},
	// Legacy hosted tenant, the only one serving delegation without a refresh token
	BlinkMobile: {
		Name:        BlinkMobile,
		Kind:        KindHosted,
		LoginURL:    "https://blinkmobile.auth0.com",
		CallbackURL: "https://localhost:3000",
	},
}

var _ Repo = (*Registry)(nil)

// Registry serves the built-in tenants with environment overrides applied
type Registry struct {
	cfg           config.TenantConfig
	defaultTenant string
	tenants       map[string]Tenant
}

type RegistryOption func(*Registry)

// WithTenant adds or replaces a tenant definition
func WithTenant(t Tenant) RegistryOption {
	return func(r *Registry) {
		r.tenants[t.Name] = t
	}
}

func NewRegistry(cfg config.TenantConfig, opts ...RegistryOption) *Registry {
	r := &Registry{
		cfg:     cfg,
		tenants: make(map[string]Tenant, len(builtIns)),
	}
	for name, t := range builtIns {
		r.tenants[name] = t
	}
	for _, opt := range opts {
		opt(r)
	}

	r.defaultTenant = DefaultTenant
	if cfg != nil {
		if name := cfg.GetTenant(); name != "" {
			if _, ok := r.tenants[name]; ok {
				r.defaultTenant = name
			}
		}
	}
	return r
}

// Get returns the named tenant. Unknown or empty names resolve to the default tenant.
func (r *Registry) Get(name string) (*Tenant, error) {
	t, ok := r.tenants[name]
	if !ok {
		t = r.tenants[r.defaultTenant]
	}
	return r.resolve(t), nil
}

func (r *Registry) List() ([]*Tenant, error) {
	list := make([]*Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		list = append(list, r.resolve(t))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *Registry) resolve(t Tenant) *Tenant {
	if r.cfg != nil {
		override(&t.LoginURL, r.cfg.GetTenantOverride(t.Name, config.LoginURLKey))
		override(&t.ClientID, r.cfg.GetTenantOverride(t.Name, config.ClientIDKey))
		override(&t.CallbackURL, r.cfg.GetTenantOverride(t.Name, config.CallbackURLKey))
		override(&t.Scope, r.cfg.GetTenantOverride(t.Name, config.ScopeKey))
		override(&t.Region, r.cfg.GetTenantOverride(t.Name, config.RegionKey))
	}
	return t.WithDefaults()
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}
