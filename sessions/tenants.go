package sessions

import (
	"slices"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// TenantSelection records the active tenant and the tenants used before.
// Previous is insertion ordered and never holds duplicates.
type TenantSelection struct {
	Current  string   `json:"current,omitempty"`
	Previous []string `json:"previous,omitempty"`
}

// Set makes name the current tenant, remembering it in Previous
func (t *TenantSelection) Set(name string) error {
	if name == "" {
		return autherrors.New(autherrors.ErrInvalidInput, "Must specify a tenant to set")
	}
	if !slices.Contains(t.Previous, name) {
		t.Previous = append(t.Previous, name)
	}
	t.Current = name
	return nil
}

// Remove forgets name, clearing Current if it was the active tenant
func (t *TenantSelection) Remove(name string) error {
	if name == "" {
		return autherrors.New(autherrors.ErrInvalidInput, "Must specify a tenant to remove")
	}
	t.Previous = slices.DeleteFunc(t.Previous, func(p string) bool { return p == name })
	if t.Current == name {
		t.Current = ""
	}
	return nil
}
