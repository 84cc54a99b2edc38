package tenants

// Repo resolves tenant configuration by name
type Repo interface {
	Get(name string) (*Tenant, error)
	List() ([]*Tenant, error)
}
