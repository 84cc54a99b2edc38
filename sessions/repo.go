package sessions

import "context"

// Mutator changes a record in place. Returning an error aborts the update and nothing is written.
type Mutator func(record *Record) error

// Store loads and persists the session record.
//
// Update must be serialised: the mutator is applied to the latest stored record and the
// result is persisted before Update returns, so concurrent updates never drop each other.
// Readers must never observe a partially written record.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Update(ctx context.Context, mutate Mutator) (*Record, error)
}
