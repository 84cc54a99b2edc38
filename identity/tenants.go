package identity

import (
	"context"

	"github.com/jrsteele09/go-auth-client/sessions"
)

// Tenants returns the current and previously used tenants
func (c *Client) Tenants(ctx context.Context) (sessions.TenantSelection, error) {
	record, err := c.store.Load(ctx)
	if err != nil {
		return sessions.TenantSelection{}, err
	}
	return record.Clone().Tenants, nil
}

// SetTenant makes name the current tenant
func (c *Client) SetTenant(ctx context.Context, name string) (sessions.TenantSelection, error) {
	return c.updateTenants(ctx, func(t *sessions.TenantSelection) error {
		return t.Set(name)
	})
}

// RemoveTenant forgets name, clearing the current tenant if it was selected
func (c *Client) RemoveTenant(ctx context.Context, name string) (sessions.TenantSelection, error) {
	return c.updateTenants(ctx, func(t *sessions.TenantSelection) error {
		return t.Remove(name)
	})
}

func (c *Client) updateTenants(ctx context.Context, mutate func(*sessions.TenantSelection) error) (sessions.TenantSelection, error) {
	record, err := c.store.Update(ctx, func(r *sessions.Record) error {
		return mutate(&r.Tenants)
	})
	if err != nil {
		return sessions.TenantSelection{}, err
	}
	return record.Tenants, nil
}
