package config

import "time"

type TokenConfig interface {
	// GetRefreshBefore is the early refresh window used when a token carries no
	// refreshIdTokenBeforeSeconds claim. Zero disables early refresh.
	GetRefreshBefore() time.Duration
}

type Tokens struct{}

var _ TokenConfig = Tokens{}

func (Tokens) GetRefreshBefore() time.Duration {
	return GetDuration(refreshWindowVar, 0)
}
