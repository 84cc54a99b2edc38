package config

const (
	StoreBackendFile    = "file"
	StoreBackendKeyring = "keyring"
)

type StoreConfig interface {
	GetStoreBackend() string
	// GetConfigDir returns the directory holding the session file, empty means the XDG default
	GetConfigDir() string
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetStoreBackend() string {
	switch backend := GetEnv(storeVar, StoreBackendFile); backend {
	case StoreBackendKeyring:
		return backend
	default:
		return StoreBackendFile
	}
}

func (Store) GetConfigDir() string {
	return GetEnv(configDirVar, "")
}
