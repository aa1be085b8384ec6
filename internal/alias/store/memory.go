// Package store provides the durable alias mapping. The in-memory
// implementation backs unit tests and single-node development; Postgres is
// the production store.
package store

import (
	"context"
	"fmt"
	"sync"

	"siteadmin/internal/alias/models"
	id "siteadmin/pkg/domain"
	"siteadmin/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded alias store. Host uniqueness is enforced under
// the lock, giving the same conflict semantics the Postgres unique index
// provides.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.AliasID]*models.Alias
	byHost  map[string]id.AliasID
	ordered []id.AliasID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.AliasID]*models.Alias),
		byHost: make(map[string]id.AliasID),
	}
}

func (s *InMemory) Insert(_ context.Context, alias *models.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := alias.HostKey()
	if _, exists := s.byHost[key]; exists {
		return fmt.Errorf("host %q: %w", alias.Host, sentinel.ErrConflict)
	}

	cp := *alias
	s.byID[alias.ID] = &cp
	s.byHost[key] = alias.ID
	s.ordered = append(s.ordered, alias.ID)
	return nil
}

func (s *InMemory) Update(_ context.Context, alias *models.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[alias.ID]
	if !ok {
		return sentinel.ErrNotFound
	}

	key := alias.HostKey()
	if holder, taken := s.byHost[key]; taken && holder != alias.ID {
		return fmt.Errorf("host %q: %w", alias.Host, sentinel.ErrConflict)
	}

	delete(s.byHost, existing.HostKey())
	cp := *alias
	s.byID[alias.ID] = &cp
	s.byHost[key] = alias.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, aliasID id.AliasID) (*models.Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alias, ok := s.byID[aliasID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *alias
	return &cp, nil
}

func (s *InMemory) FindByHostKey(_ context.Context, hostKey string) (*models.Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aliasID, ok := s.byHost[hostKey]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.byID[aliasID]
	return &cp, nil
}

func (s *InMemory) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*models.Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aliases := make([]*models.Alias, 0)
	for _, aliasID := range s.ordered {
		if a, ok := s.byID[aliasID]; ok && a.TenantID == tenantID {
			cp := *a
			aliases = append(aliases, &cp)
		}
	}
	return aliases, nil
}

// SetPrimary promotes the alias and demotes the tenant's other aliases under
// a single lock acquisition.
func (s *InMemory) SetPrimary(_ context.Context, aliasID id.AliasID) (*models.Alias, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.byID[aliasID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	for _, a := range s.byID {
		if a.TenantID == target.TenantID {
			a.IsPrimary = a.ID == aliasID
		}
	}
	cp := *target
	return &cp, nil
}

func (s *InMemory) Delete(_ context.Context, aliasID id.AliasID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alias, ok := s.byID[aliasID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byHost, alias.HostKey())
	delete(s.byID, aliasID)
	for i, ordered := range s.ordered {
		if ordered == aliasID {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the size of the global alias set across all tenants.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
