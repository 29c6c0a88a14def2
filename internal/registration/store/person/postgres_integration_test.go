//go:build integration

package person_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
	"ponto/internal/registration/store/organization"
	"ponto/internal/registration/store/person"
	"ponto/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres      *containers.PostgresContainer
	organizations *organization.Postgres
	store         *person.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.organizations = organization.NewPostgres(s.postgres.DB)
	s.store = person.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "persons", "organizations")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newPersistedOrg(taxID string) *models.Organization {
	org := &models.Organization{LegalName: "Acme Ltd", TaxID: taxID}
	s.Require().NoError(s.organizations.Create(context.Background(), org))
	return org
}

func (s *PostgresStoreSuite) newPerson(personalID, email string, org *models.Organization) *models.Person {
	return &models.Person{
		Name:           "Ana",
		Email:          email,
		PasswordHash:   "$2a$04$notarealhashbutlookslikeone",
		PersonalID:     personalID,
		Role:           models.RoleAdmin,
		OrganizationID: org.ID,
	}
}

// TestCreateAndFind verifies the round trip, including the password hash and
// role columns.
func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	org := s.newPersistedOrg("11111111000100")

	p := s.newPerson("12345678900", "ana@acme.com", org)
	s.Require().NoError(s.store.Create(ctx, p))
	s.NotZero(p.ID)

	byCPF, err := s.store.FindByPersonalID(ctx, "12345678900")
	s.Require().NoError(err)
	s.Equal(p.ID, byCPF.ID)
	s.Equal(p.PasswordHash, byCPF.PasswordHash)
	s.Equal(models.RoleAdmin, byCPF.Role)
	s.Equal(org.ID, byCPF.OrganizationID)

	byEmail, err := s.store.FindByEmail(ctx, "ana@acme.com")
	s.Require().NoError(err)
	s.Equal(p.ID, byEmail.ID)
}

// TestUniqueConstraints verifies the personal_id and email unique indexes
// map to store.ErrConflict.
func (s *PostgresStoreSuite) TestUniqueConstraints() {
	ctx := context.Background()
	org := s.newPersistedOrg("22222222000100")

	s.Require().NoError(s.store.Create(ctx, s.newPerson("11122233344", "a@acme.com", org)))

	err := s.store.Create(ctx, s.newPerson("11122233344", "b@acme.com", org))
	s.ErrorIs(err, store.ErrConflict, "duplicate personal id")

	err = s.store.Create(ctx, s.newPerson("55566677788", "a@acme.com", org))
	s.ErrorIs(err, store.ErrConflict, "duplicate email")

	err = s.store.Create(ctx, s.newPerson("55566677788", "A@ACME.COM", org))
	s.ErrorIs(err, store.ErrConflict, "duplicate email, case-insensitive")
}

// TestFindByEmailCaseInsensitive verifies lookups match the lower(email)
// index semantics.
func (s *PostgresStoreSuite) TestFindByEmailCaseInsensitive() {
	ctx := context.Background()
	org := s.newPersistedOrg("33333333000100")

	p := s.newPerson("10120230340", "Dora@Acme.com", org)
	s.Require().NoError(s.store.Create(ctx, p))

	found, err := s.store.FindByEmail(ctx, "dora@acme.com")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)
}
