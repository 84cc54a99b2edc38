package tenantrepofakes

import (
	"sort"
	"sync"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

// FakeTenantRepo holds tenants in memory. Get falls back to the first tenant upserted,
// matching the registry's default-tenant behaviour.
type FakeTenantRepo struct {
	tenants  map[string]*tenants.Tenant
	fallback string
	lock     sync.RWMutex
}

func NewFakeTenantRepo(initial ...*tenants.Tenant) *FakeTenantRepo {
	tr := &FakeTenantRepo{
		tenants: make(map[string]*tenants.Tenant),
	}
	for _, t := range initial {
		tr.Upsert(t)
	}
	return tr
}

func (tr *FakeTenantRepo) Upsert(tenantData *tenants.Tenant) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.fallback == "" {
		tr.fallback = tenantData.Name
	}
	tr.tenants[tenantData.Name] = tenantData.WithDefaults()
}

func (tr *FakeTenantRepo) Get(name string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	t, ok := tr.tenants[name]
	if !ok {
		t, ok = tr.tenants[tr.fallback]
	}
	if !ok {
		return nil, autherrors.Newf(autherrors.ErrConfiguration, "tenant %q is not configured", name)
	}
	c := *t
	return &c, nil
}

func (tr *FakeTenantRepo) List() ([]*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	list := make([]*tenants.Tenant, 0, len(tr.tenants))
	for _, t := range tr.tenants {
		c := *t
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}
