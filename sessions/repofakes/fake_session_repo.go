package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/sessions"
)

var _ sessions.Store = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory Store. Records are copied in and out so callers can
// never mutate the stored value behind the store's back.
type FakeSessionRepo struct {
	record   *sessions.Record
	lock     sync.Mutex
	writeErr error
	updates  int
}

func NewFakeSessionRepo(initial *sessions.Record) *FakeSessionRepo {
	return &FakeSessionRepo{record: initial.Clone()}
}

// FailWrites makes subsequent updates fail with err without changing the record
func (sr *FakeSessionRepo) FailWrites(err error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.writeErr = err
}

func (sr *FakeSessionRepo) Load(_ context.Context) (*sessions.Record, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	return sr.record.Clone(), nil
}

func (sr *FakeSessionRepo) Update(_ context.Context, mutate sessions.Mutator) (*sessions.Record, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	next := sr.record.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	if sr.writeErr != nil {
		return nil, sr.writeErr
	}
	sr.updates++
	sr.record = next
	return next.Clone(), nil
}

// Snapshot returns the stored record without counting as a Load
func (sr *FakeSessionRepo) Snapshot() *sessions.Record {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	return sr.record.Clone()
}

// Updates returns the number of successful writes
func (sr *FakeSessionRepo) Updates() int {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	return sr.updates
}
