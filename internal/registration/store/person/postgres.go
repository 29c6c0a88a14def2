package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

const uniqueViolation = "23505"

// Postgres persists persons in PostgreSQL. Unique indexes on personal_id and
// lower(email) are the authoritative uniqueness guarantee.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create assigns an ID and inserts the person. A duplicate personal ID or
// email maps to store.ErrConflict.
func (s *Postgres) Create(ctx context.Context, p *models.Person) error {
	id := uuid.New()
	now := time.Now().UTC()

	query := `
		INSERT INTO persons (id, name, email, password_hash, personal_id, role, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		id, p.Name, p.Email, p.PasswordHash, p.PersonalID, string(p.Role), p.OrganizationID, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return store.ErrConflict
		}
		return fmt.Errorf("insert person: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	return nil
}

func (s *Postgres) FindByPersonalID(ctx context.Context, personalID string) (*models.Person, error) {
	query := selectPerson + ` WHERE personal_id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, personalID))
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	query := selectPerson + ` WHERE lower(email) = lower($1)`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

const selectPerson = `
	SELECT id, name, email, password_hash, personal_id, role, organization_id, created_at
	FROM persons`

func (s *Postgres) scanOne(row *sql.Row) (*models.Person, error) {
	var p models.Person
	var role string
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.PersonalID, &role, &p.OrganizationID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	p.Role = models.Role(role)
	return &p, nil
}
