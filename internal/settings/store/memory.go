// Package store persists tenant settings as a key/value bag. The in-memory
// implementation backs unit tests and single-node development; Postgres is
// the production store.
package store

import (
	"context"
	"maps"
	"sync"

	id "siteadmin/pkg/domain"
)

// InMemory is a mutex-guarded settings store.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{tenants: make(map[id.TenantID]map[string]string)}
}

// GetAll returns the tenant's full settings bag; an unknown tenant yields an
// empty bag, not an error.
func (s *InMemory) GetAll(_ context.Context, tenantID id.TenantID) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bag := make(map[string]string, len(s.tenants[tenantID]))
	maps.Copy(bag, s.tenants[tenantID])
	return bag, nil
}

// Save upserts the given settings, leaving keys outside the batch untouched.
func (s *InMemory) Save(_ context.Context, tenantID id.TenantID, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bag, ok := s.tenants[tenantID]
	if !ok {
		bag = make(map[string]string, len(values))
		s.tenants[tenantID] = bag
	}
	maps.Copy(bag, values)
	return nil
}
