package store

import "github.com/redis/go-redis/v9"

type Stores struct {
	companies CompanyStore
}

func NewStores(client *redis.Client) *Stores {
	return &Stores{companies: NewCompanyStore(client)}
}

// NewStoresFrom assembles Stores from pre-built store implementations.
func NewStoresFrom(companies CompanyStore) *Stores {
	return &Stores{companies: companies}
}

func (s *Stores) Companies() CompanyStore {
	return s.companies
}
