package organization

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

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// Postgres persists organizations in PostgreSQL. The unique index on tax_id
// is the authoritative uniqueness guarantee under concurrent registrations.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create assigns an ID and inserts the organization. A duplicate tax ID maps
// to store.ErrConflict.
func (s *Postgres) Create(ctx context.Context, org *models.Organization) error {
	id := uuid.New()
	now := time.Now().UTC()

	query := `
		INSERT INTO organizations (id, legal_name, tax_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, id, org.LegalName, org.TaxID, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return store.ErrConflict
		}
		return fmt.Errorf("insert organization: %w", err)
	}

	org.ID = id
	org.CreatedAt = now
	return nil
}

func (s *Postgres) FindByTaxID(ctx context.Context, taxID string) (*models.Organization, error) {
	query := `
		SELECT id, legal_name, tax_id, created_at
		FROM organizations
		WHERE tax_id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, taxID))
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT id, legal_name, tax_id, created_at
		FROM organizations
		WHERE id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *Postgres) scanOne(row *sql.Row) (*models.Organization, error) {
	var org models.Organization
	err := row.Scan(&org.ID, &org.LegalName, &org.TaxID, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan organization: %w", err)
	}
	return &org, nil
}
