package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// Schema declares the registration tables. The unique indexes on tax_id,
// personal_id, and lower(email) are load-bearing: they are the backstop for
// the service's check-then-act validation under concurrent requests.
const Schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id         UUID PRIMARY KEY,
	legal_name TEXT NOT NULL,
	tax_id     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS organizations_tax_id_key ON organizations (tax_id);

CREATE TABLE IF NOT EXISTS persons (
	id              UUID PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL,
	password_hash   TEXT NOT NULL,
	personal_id     TEXT NOT NULL,
	role            TEXT NOT NULL,
	organization_id UUID NOT NULL REFERENCES organizations (id),
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS persons_personal_id_key ON persons (personal_id);
CREATE UNIQUE INDEX IF NOT EXISTS persons_email_key ON persons (lower(email));
`

// EnsureSchema applies the schema. Statements are idempotent so this is safe
// to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
