package organization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

const (
	orgRecordKeyPrefix = "org:id:"
	orgTaxIDKeyPrefix  = "org:cnpj:"
)

// Redis persists organizations as JSON blobs with a SETNX marker per tax ID.
// SETNX makes the uniqueness claim atomic, so concurrent registrations with
// the same CNPJ cannot both succeed.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Create assigns an ID and persists the organization. Returns
// store.ErrConflict if the tax ID is already claimed.
func (s *Redis) Create(ctx context.Context, org *models.Organization) error {
	id := uuid.New()

	ok, err := s.client.SetNX(ctx, orgTaxIDKeyPrefix+org.TaxID, id.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim tax id: %w", err)
	}
	if !ok {
		return store.ErrConflict
	}

	org.ID = id
	org.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(org)
	if err != nil {
		return fmt.Errorf("marshal organization: %w", err)
	}
	if err := s.client.Set(ctx, orgRecordKeyPrefix+id.String(), payload, 0).Err(); err != nil {
		return fmt.Errorf("store organization: %w", err)
	}
	return nil
}

func (s *Redis) FindByTaxID(ctx context.Context, taxID string) (*models.Organization, error) {
	id, err := s.client.Get(ctx, orgTaxIDKeyPrefix+taxID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup tax id: %w", err)
	}
	return s.findByKey(ctx, orgRecordKeyPrefix+id)
}

func (s *Redis) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return s.findByKey(ctx, orgRecordKeyPrefix+id.String())
}

func (s *Redis) findByKey(ctx context.Context, key string) (*models.Organization, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}
	var org models.Organization
	if err := json.Unmarshal(payload, &org); err != nil {
		return nil, fmt.Errorf("unmarshal organization: %w", err)
	}
	return &org, nil
}
