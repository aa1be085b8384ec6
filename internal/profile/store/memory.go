// Package store provides the durable field-definition mapping. The in-memory
// implementation backs unit tests and single-node development; Postgres is
// the production store.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"siteadmin/internal/profile/models"
	id "siteadmin/pkg/domain"
	"siteadmin/pkg/platform/sentinel"
)

type nameKey struct {
	tenant id.TenantID
	name   string
}

// InMemory is a mutex-guarded field store. Per-tenant name uniqueness is
// enforced under the lock, giving the same conflict semantics the Postgres
// unique index provides.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.FieldID]*models.FieldDefinition
	byName map[nameKey]id.FieldID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.FieldID]*models.FieldDefinition),
		byName: make(map[nameKey]id.FieldID),
	}
}

func (s *InMemory) Insert(_ context.Context, field *models.FieldDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey{tenant: field.TenantID, name: field.NameKey()}
	if _, exists := s.byName[key]; exists {
		return fmt.Errorf("field %q: %w", field.Name, sentinel.ErrConflict)
	}

	cp := *field
	s.byID[field.ID] = &cp
	s.byName[key] = field.ID
	return nil
}

func (s *InMemory) Update(_ context.Context, field *models.FieldDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[field.ID]
	if !ok || existing.TenantID != field.TenantID {
		return sentinel.ErrNotFound
	}

	key := nameKey{tenant: field.TenantID, name: field.NameKey()}
	if holder, taken := s.byName[key]; taken && holder != field.ID {
		return fmt.Errorf("field %q: %w", field.Name, sentinel.ErrConflict)
	}

	delete(s.byName, nameKey{tenant: existing.TenantID, name: existing.NameKey()})
	cp := *field
	s.byID[field.ID] = &cp
	s.byName[key] = field.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID, fieldID id.FieldID) (*models.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	field, ok := s.byID[fieldID]
	if !ok || field.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	cp := *field
	return &cp, nil
}

func (s *InMemory) FindByNameKey(_ context.Context, tenantID id.TenantID, key string) (*models.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fieldID, ok := s.byName[nameKey{tenant: tenantID, name: key}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.byID[fieldID]
	return &cp, nil
}

func (s *InMemory) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*models.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := make([]*models.FieldDefinition, 0)
	for _, f := range s.byID {
		if f.TenantID == tenantID {
			cp := *f
			fields = append(fields, &cp)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		if fields[i].ViewOrder != fields[j].ViewOrder {
			return fields[i].ViewOrder < fields[j].ViewOrder
		}
		return fields[i].CreatedAt.Before(fields[j].CreatedAt)
	})
	return fields, nil
}

func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID, fieldID id.FieldID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, ok := s.byID[fieldID]
	if !ok || field.TenantID != tenantID {
		return sentinel.ErrNotFound
	}
	delete(s.byName, nameKey{tenant: field.TenantID, name: field.NameKey()})
	delete(s.byID, fieldID)
	return nil
}
