package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	regmetrics "ponto/internal/registration/metrics"
	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
	dErrors "ponto/pkg/domain-errors"
)

// Fixed messages for uniqueness conflicts. These are part of the API
// contract; clients match on them.
const (
	MsgOrganizationExists = "organization already exists."
	MsgPersonalIDExists   = "personal ID already exists."
	MsgEmailExists        = "email already exists."
)

// OrganizationStore is the identity store for organizations.
type OrganizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByTaxID(ctx context.Context, taxID string) (*models.Organization, error)
}

// PersonStore is the identity store for persons.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	FindByPersonalID(ctx context.Context, personalID string) (*models.Person, error)
	FindByEmail(ctx context.Context, email string) (*models.Person, error)
}

// Hasher computes one-way password hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// Conflict describes one violated uniqueness constraint. Field tags the
// entity kind ("organization" or "person"), Message is the fixed API string.
type Conflict struct {
	Field   string
	Message string
}

// ConflictError carries the ordered conflict list produced by Validate.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	msgs := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		msgs = append(msgs, c.Message)
	}
	return "registration conflicts: " + strings.Join(msgs, " ")
}

// Messages returns the conflict messages in check order.
func (e *ConflictError) Messages() []string {
	msgs := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		msgs = append(msgs, c.Message)
	}
	return msgs
}

// Service orchestrates company registration: uniqueness validation, password
// hashing, and the ordered organization-then-person persists.
type Service struct {
	organizations OrganizationStore
	persons       PersonStore
	hasher        Hasher
	logger        *slog.Logger
	metrics       *regmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(organizations OrganizationStore, persons PersonStore, hasher Hasher, opts ...Option) *Service {
	s := &Service{organizations: organizations, persons: persons, hasher: hasher}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Validate runs the three uniqueness lookups in fixed order (CNPJ, then CPF,
// then email), accumulating every conflict rather than stopping at the first.
// It is read-only; an empty slice means no conflicts.
func (s *Service) Validate(ctx context.Context, req *models.Registration) ([]Conflict, error) {
	var conflicts []Conflict

	if _, err := s.organizations.FindByTaxID(ctx, req.TaxID); err == nil {
		conflicts = append(conflicts, Conflict{Field: "organization", Message: MsgOrganizationExists})
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "tax id lookup failed")
	}

	if _, err := s.persons.FindByPersonalID(ctx, req.PersonalID); err == nil {
		conflicts = append(conflicts, Conflict{Field: "person", Message: MsgPersonalIDExists})
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "personal id lookup failed")
	}

	if _, err := s.persons.FindByEmail(ctx, req.Email); err == nil {
		conflicts = append(conflicts, Conflict{Field: "person", Message: MsgEmailExists})
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "email lookup failed")
	}

	return conflicts, nil
}

// Register creates the organization and its first administrative employee.
//
// The organization is persisted strictly before the person so the person's
// organization reference always resolves. There is no compensating delete:
// if the person persist fails, the organization remains (the caller sees an
// internal error and a retry is rejected on the CNPJ conflict).
func (s *Service) Register(ctx context.Context, req *models.Registration) (*models.RegistrationResult, error) {
	start := time.Now()
	defer s.observeRegister(start)

	conflicts, err := s.Validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.recordConflicts(conflicts)
		return nil, &ConflictError{Conflicts: conflicts}
	}

	org, err := models.NewOrganization(req.LegalName, req.TaxID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid organization")
	}
	if err := s.organizations.Create(ctx, org); err != nil {
		// The unique index is the backstop for the check-then-act race:
		// a concurrent registration may have claimed the CNPJ between
		// Validate and Create.
		if errors.Is(err, store.ErrConflict) {
			conflict := Conflict{Field: "organization", Message: MsgOrganizationExists}
			s.recordConflicts([]Conflict{conflict})
			return nil, &ConflictError{Conflicts: []Conflict{conflict}}
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist organization")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	person, err := models.NewPerson(req.Name, req.Email, hash, req.PersonalID, models.RoleAdmin, org.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid person")
	}
	if err := s.persons.Create(ctx, person); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Same backstop for CPF/email races. The organization is
			// not rolled back.
			conflict := Conflict{Field: "person", Message: MsgPersonalIDExists}
			s.recordConflicts([]Conflict{conflict})
			return nil, &ConflictError{Conflicts: []Conflict{conflict}}
		}
		s.logger.ErrorContext(ctx, "person persist failed after organization persist",
			"organization_id", org.ID,
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist person")
	}

	s.incrementCreated()
	s.logger.InfoContext(ctx, "company registered",
		"organization_id", org.ID,
		"person_id", person.ID,
	)

	return &models.RegistrationResult{
		Name:       person.Name,
		Email:      person.Email,
		Password:   "",
		PersonalID: person.PersonalID,
		TaxID:      org.TaxID,
		LegalName:  org.LegalName,
		PersonID:   person.ID,
	}, nil
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementRegistrationsCreated()
	}
}

func (s *Service) observeRegister(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegister(start)
	}
}

func (s *Service) recordConflicts(conflicts []Conflict) {
	if s.metrics == nil {
		return
	}
	for _, c := range conflicts {
		kind := "cnpj"
		switch c.Message {
		case MsgPersonalIDExists:
			kind = "cpf"
		case MsgEmailExists:
			kind = "email"
		}
		s.metrics.IncrementConflict(kind)
	}
}
