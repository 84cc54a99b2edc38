package clients

import (
	"context"
	"maps"
	"sync"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

var _ Repo = (*StaticRepo)(nil)

// StaticRepo is an in-memory name to id table, seeded with the known clients
type StaticRepo struct {
	ids  map[string]string
	lock sync.RWMutex
}

func NewStaticRepo(extra map[string]string) *StaticRepo {
	ids := maps.Clone(knownClients)
	maps.Copy(ids, extra)
	return &StaticRepo{ids: ids}
}

// Upsert registers or replaces a client id
func (r *StaticRepo) Upsert(c *Client) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ids[c.Name] = c.ID
}

func (r *StaticRepo) Get(_ context.Context, name string) (*Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	id, ok := r.ids[name]
	if !ok || id == "" {
		return nil, autherrors.Newf(autherrors.ErrConfiguration, "Could not find client id for %q", name)
	}
	return &Client{Name: name, ID: id}, nil
}
