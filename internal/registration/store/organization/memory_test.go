package organization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
)

type OrganizationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestOrganizationStoreSuite(t *testing.T) {
	suite.Run(t, new(OrganizationStoreSuite))
}

func (s *OrganizationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *OrganizationStoreSuite) newOrganization(taxID string) *models.Organization {
	return &models.Organization{LegalName: "Acme Ltd", TaxID: taxID}
}

// TestCreationAndLookups verifies IDs are assigned on Create and lookups work.
func (s *OrganizationStoreSuite) TestCreationAndLookups() {
	s.Run("assigns ID and finds by tax ID", func() {
		org := s.newOrganization("11111111000100")
		s.Require().NoError(s.store.Create(s.ctx, org))
		s.NotEqual(uuid.Nil, org.ID, "store must assign the ID")
		s.False(org.CreatedAt.IsZero())

		found, err := s.store.FindByTaxID(s.ctx, "11111111000100")
		s.Require().NoError(err)
		s.Equal(org.ID, found.ID)
		s.Equal("Acme Ltd", found.LegalName)
	})

	s.Run("finds by ID", func() {
		org := s.newOrganization("22222222000100")
		s.Require().NoError(s.store.Create(s.ctx, org))

		found, err := s.store.FindByID(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Equal(org.TaxID, found.TaxID)
	})

	s.Run("returns ErrNotFound for unknown tax ID", func() {
		_, err := s.store.FindByTaxID(s.ctx, "00000000000000")
		s.Require().ErrorIs(err, store.ErrNotFound)
	})
}

// TestTaxIDUniqueness verifies duplicate tax IDs are rejected.
func (s *OrganizationStoreSuite) TestTaxIDUniqueness() {
	org1 := s.newOrganization("33333333000100")
	s.Require().NoError(s.store.Create(s.ctx, org1))

	org2 := s.newOrganization("33333333000100")
	err := s.store.Create(s.ctx, org2)
	s.Require().ErrorIs(err, store.ErrConflict)
	s.Equal(uuid.Nil, org2.ID, "no ID is assigned on conflict")
}
