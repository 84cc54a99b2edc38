package clients

import (
	"context"
	"net/http"
	"sync"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/pkg/errors"
)

var _ Repo = (*RemoteRepo)(nil)

type remoteConfiguration struct {
	Clients map[string]string `json:"clients"`
}

// RemoteRepo reads client ids from a JSON document of the form {"clients": {name: id}}.
// The document is fetched once per process; names it does not list, or any fetch
// failure, fall through to the fallback repo.
type RemoteRepo struct {
	url       string
	transport transport.Transport
	fallback  Repo

	lock    sync.Mutex
	fetched map[string]string
}

func NewRemoteRepo(url string, t transport.Transport, fallback Repo) *RemoteRepo {
	if fallback == nil {
		fallback = NewStaticRepo(nil)
	}
	return &RemoteRepo{
		url:       url,
		transport: t,
		fallback:  fallback,
	}
}

func (r *RemoteRepo) Get(ctx context.Context, name string) (*Client, error) {
	ids, fetchErr := r.configuration(ctx)
	if id := ids[name]; id != "" {
		return &Client{Name: name, ID: id}, nil
	}

	c, err := r.fallback.Get(ctx, name)
	if err != nil && fetchErr != nil {
		return nil, autherrors.WithCause(autherrors.ErrConfiguration, fetchErr, "Could not find client configuration: "+fetchErr.Error())
	}
	return c, err
}

func (r *RemoteRepo) configuration(ctx context.Context) (map[string]string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.fetched != nil {
		return r.fetched, nil
	}

	resp, err := r.transport.Do(ctx, &transport.Request{Method: http.MethodGet, URL: r.url})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("RemoteRepo.configuration: %s returned %d", r.url, resp.Status)
	}

	var cfg remoteConfiguration
	if err := resp.DecodeJSON(&cfg); err != nil {
		return nil, errors.Wrap(err, "RemoteRepo.configuration DecodeJSON")
	}
	if cfg.Clients == nil {
		cfg.Clients = map[string]string{}
	}
	r.fetched = cfg.Clients
	return r.fetched, nil
}
