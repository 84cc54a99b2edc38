package config

import (
	"os"
	"strings"
	"time"
)

const (
	envPrefix        = "IDENTITY_"
	appNameVar       = envPrefix + "APP_NAME"
	httpTimeoutVar   = envPrefix + "HTTP_TIMEOUT"
	clientsURLVar    = envPrefix + "CLIENTS_URL"
	tenantVar        = envPrefix + "TENANT"
	refreshWindowVar = envPrefix + "REFRESH_BEFORE"
	storeVar         = envPrefix + "STORE"
	configDirVar     = envPrefix + "CONFIG_DIR"
)

// Keys recognised by GetTenantOverride
const (
	LoginURLKey    = "LOGIN_URL"
	ClientIDKey    = "CLIENT_ID"
	CallbackURLKey = "CALLBACK_URL"
	ScopeKey       = "SCOPE"
	RegionKey      = "REGION"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Auth Client")
}

// GetHTTPTimeout returns the per request timeout, zero means no timeout
func (EnvVars) GetHTTPTimeout() time.Duration {
	return GetDuration(httpTimeoutVar, 0)
}

func (EnvVars) GetClientsURL() string {
	return GetEnv(clientsURLVar, "")
}

type Tenants struct{}

var _ TenantConfig = Tenants{}

func (Tenants) GetTenant() string {
	return GetEnv(tenantVar, "")
}

func (Tenants) GetTenantOverride(tenant, key string) string {
	if tenant != "" {
		name := strings.ToUpper(strings.ReplaceAll(tenant, "-", "_"))
		if value := os.Getenv(envPrefix + name + "_" + key); value != "" {
			return value
		}
	}
	return os.Getenv(envPrefix + key)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses a Go duration (e.g. "5m"); invalid or empty values fall back to defaultValue
func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
