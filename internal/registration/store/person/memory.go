package person

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

// InMemory keeps persons in maps guarded by a RWMutex, with secondary indexes
// for the two unique keys (CPF and email).
type InMemory struct {
	mu           sync.RWMutex
	byID         map[uuid.UUID]models.Person
	byPersonalID map[string]uuid.UUID
	byEmail      map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:         make(map[uuid.UUID]models.Person),
		byPersonalID: make(map[string]uuid.UUID),
		byEmail:      make(map[string]uuid.UUID),
	}
}

// Create assigns an ID and persists the person. Returns store.ErrConflict if
// the personal ID or email is already taken. Emails compare
// case-insensitively.
func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emailKey := strings.ToLower(p.Email)
	if _, exists := s.byPersonalID[p.PersonalID]; exists {
		return store.ErrConflict
	}
	if _, exists := s.byEmail[emailKey]; exists {
		return store.ErrConflict
	}

	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	s.byID[p.ID] = *p
	s.byPersonalID[p.PersonalID] = p.ID
	s.byEmail[emailKey] = p.ID
	return nil
}

func (s *InMemory) FindByPersonalID(_ context.Context, personalID string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPersonalID[personalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	p := s.byID[id]
	return &p, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	p := s.byID[id]
	return &p, nil
}
