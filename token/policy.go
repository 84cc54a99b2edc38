package token

import (
	"time"

	"github.com/jrsteele09/go-auth-client/internal/config"
)

// State is the classification of a session token at a point in time
type State int

const (
	Fresh State = iota
	RefreshDue
	Expired
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case RefreshDue:
		return "refresh-due"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Policy decides whether a token can be used as is, should be renewed early or has expired.
type Policy struct {
	// DefaultRefreshBefore applies to tokens without a refreshIdTokenBeforeSeconds claim.
	// Zero disables early refresh so only hard expiry triggers a refresh.
	DefaultRefreshBefore time.Duration
}

func NewPolicy(cfg config.TokenConfig) Policy {
	if cfg == nil {
		return Policy{}
	}
	return Policy{DefaultRefreshBefore: cfg.GetRefreshBefore()}
}

// Window returns the early refresh window for claims
func (p Policy) Window(claims *Claims) time.Duration {
	if claims != nil && claims.RefreshBefore != nil {
		return *claims.RefreshBefore
	}
	return p.DefaultRefreshBefore
}

func (p Policy) Classify(claims *Claims, now time.Time) State {
	if !claims.ExpiresAt.After(now) {
		return Expired
	}
	window := p.Window(claims)
	if window > 0 && !claims.ExpiresAt.After(now.Add(window)) {
		return RefreshDue
	}
	return Fresh
}
