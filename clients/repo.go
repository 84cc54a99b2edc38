package clients

import "context"

// Repo resolves a client name to its registered client id.
// Get returns autherrors.ErrConfiguration when the name is not registered.
type Repo interface {
	Get(ctx context.Context, name string) (*Client, error)
}
