package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

const (
	personRecordKeyPrefix = "person:id:"
	personCPFKeyPrefix    = "person:cpf:"
	personEmailKeyPrefix  = "person:email:"
)

// Redis persists persons as JSON blobs with SETNX markers for the two unique
// keys. The CPF marker is claimed first; if the email marker is already
// taken, the CPF claim is released before reporting the conflict.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Create assigns an ID and persists the person. Returns store.ErrConflict if
// the personal ID or email is already claimed.
func (s *Redis) Create(ctx context.Context, p *models.Person) error {
	id := uuid.New()
	cpfKey := personCPFKeyPrefix + p.PersonalID
	emailKey := personEmailKeyPrefix + strings.ToLower(p.Email)

	ok, err := s.client.SetNX(ctx, cpfKey, id.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim personal id: %w", err)
	}
	if !ok {
		return store.ErrConflict
	}

	ok, err = s.client.SetNX(ctx, emailKey, id.String(), 0).Result()
	if err != nil {
		s.client.Del(ctx, cpfKey)
		return fmt.Errorf("claim email: %w", err)
	}
	if !ok {
		s.client.Del(ctx, cpfKey)
		return store.ErrConflict
	}

	p.ID = id
	p.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(redisPerson{
		Person:       *p,
		PasswordHash: p.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("marshal person: %w", err)
	}
	if err := s.client.Set(ctx, personRecordKeyPrefix+id.String(), payload, 0).Err(); err != nil {
		return fmt.Errorf("store person: %w", err)
	}
	return nil
}

func (s *Redis) FindByPersonalID(ctx context.Context, personalID string) (*models.Person, error) {
	return s.findByMarker(ctx, personCPFKeyPrefix+personalID)
}

func (s *Redis) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	return s.findByMarker(ctx, personEmailKeyPrefix+strings.ToLower(email))
}

func (s *Redis) findByMarker(ctx context.Context, markerKey string) (*models.Person, error) {
	id, err := s.client.Get(ctx, markerKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup person marker: %w", err)
	}

	payload, err := s.client.Get(ctx, personRecordKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load person: %w", err)
	}

	var rp redisPerson
	if err := json.Unmarshal(payload, &rp); err != nil {
		return nil, fmt.Errorf("unmarshal person: %w", err)
	}
	p := rp.Person
	p.PasswordHash = rp.PasswordHash
	return &p, nil
}

// redisPerson re-adds the password hash, which models.Person excludes from
// JSON. The hash must survive the round trip through the store.
type redisPerson struct {
	models.Person
	PasswordHash string `json:"password_hash"`
}
