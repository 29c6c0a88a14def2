package organization

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

// InMemory keeps organizations in maps guarded by a RWMutex. It favors
// clarity over performance and backs unit tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.Organization
	byTaxID map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[uuid.UUID]models.Organization),
		byTaxID: make(map[string]uuid.UUID),
	}
}

// Create assigns an ID and persists the organization. Returns
// store.ErrConflict if the tax ID is already taken.
func (s *InMemory) Create(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTaxID[org.TaxID]; exists {
		return store.ErrConflict
	}

	org.ID = uuid.New()
	org.CreatedAt = time.Now().UTC()
	s.byID[org.ID] = *org
	s.byTaxID[org.TaxID] = org.ID
	return nil
}

func (s *InMemory) FindByTaxID(_ context.Context, taxID string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTaxID[taxID]
	if !ok {
		return nil, store.ErrNotFound
	}
	org := s.byID[id]
	return &org, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &org, nil
}
