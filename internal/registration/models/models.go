package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "ponto/pkg/domain-errors"
)

// Role enumerates the profiles a person can hold within an organization.
type Role string

const (
	// RoleAdmin is assigned to the first employee created with a company
	// registration.
	RoleAdmin Role = "administrator"
	// RoleEmployee is reserved for people added after the initial
	// registration.
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Organization is a registered company (Pessoa Jurídica).
//
// Invariants:
//   - LegalName is non-empty
//   - TaxID (CNPJ) is non-empty and unique across all organizations
//   - ID is assigned by the store on Create and is immutable afterwards
type Organization struct {
	ID        uuid.UUID `json:"id"`
	LegalName string    `json:"razaoSocial"`
	TaxID     string    `json:"cnpj"`
	CreatedAt time.Time `json:"created_at"`
}

func NewOrganization(legalName, taxID string) (*Organization, error) {
	if legalName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "legal name cannot be empty")
	}
	if taxID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tax id cannot be empty")
	}
	return &Organization{LegalName: legalName, TaxID: taxID}, nil
}

// Person is an employee of an organization.
//
// Invariants:
//   - Email and PersonalID (CPF) are each unique across all persons
//   - PasswordHash is a bcrypt hash, never the plaintext
//   - OrganizationID references an existing Organization
//   - ID is assigned by the store on Create and is immutable afterwards
type Person struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"nome"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // never serialize
	PersonalID     string    `json:"cpf"`
	Role           Role      `json:"perfil"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewPerson(name, email, passwordHash, personalID string, role Role, organizationID uuid.UUID) (*Person, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	if personalID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "personal id cannot be empty")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid role")
	}
	if organizationID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "organization id cannot be nil")
	}
	return &Person{
		Name:           name,
		Email:          email,
		PasswordHash:   passwordHash,
		PersonalID:     personalID,
		Role:           role,
		OrganizationID: organizationID,
	}, nil
}

// Registration is the transient payload for registering a company together
// with its first administrative employee. It is never persisted.
type Registration struct {
	LegalName  string
	TaxID      string
	Name       string
	Email      string
	Password   string // plaintext, hashed before any persistence
	PersonalID string
}

// RegistrationResult echoes the registered data back to the caller. Password
// is intentionally always empty: the secret is never returned.
type RegistrationResult struct {
	Name       string
	Email      string
	Password   string
	PersonalID string
	TaxID      string
	LegalName  string
	PersonID   uuid.UUID
}
