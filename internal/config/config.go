package config

import "time"

type Config interface {
	EnvConfig
	TenantConfig
	TokenConfig
	StoreConfig
}

type EnvConfig interface {
	GetAppName() string
	GetHTTPTimeout() time.Duration
	GetClientsURL() string
}

// TenantConfig exposes the environment overrides applied on top of the built-in tenants.
type TenantConfig interface {
	GetTenant() string
	// GetTenantOverride returns the override for key (e.g. LOGIN_URL) for the named tenant.
	// Tenant specific variables win over the global ones.
	GetTenantOverride(tenant, key string) string
}

type mainConfig struct {
	EnvVars
	Tenants
	Tokens
	Store
}

func New() Config {
	return mainConfig{}
}
