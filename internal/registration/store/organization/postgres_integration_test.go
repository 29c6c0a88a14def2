//go:build integration

package organization_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"ponto/internal/registration/models"
	"ponto/internal/registration/store"
	"ponto/internal/registration/store/organization"
	"ponto/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *organization.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = organization.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "persons", "organizations")
	s.Require().NoError(err)
}

func newTestOrganization(taxID string) *models.Organization {
	return &models.Organization{LegalName: "Acme Ltd", TaxID: taxID}
}

// TestCreateAndFind verifies round trip through the real database.
func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	org := newTestOrganization("11111111000100")
	s.Require().NoError(s.store.Create(ctx, org))
	s.NotZero(org.ID)

	found, err := s.store.FindByTaxID(ctx, "11111111000100")
	s.Require().NoError(err)
	s.Equal(org.ID, found.ID)
	s.Equal("Acme Ltd", found.LegalName)

	_, err = s.store.FindByTaxID(ctx, "00000000000000")
	s.ErrorIs(err, store.ErrNotFound)
}

// TestConcurrentUniqueTaxIDViolation verifies that concurrent creation
// attempts with the same tax ID result in exactly one success. This is the
// storage-level backstop the registration workflow relies on.
func (s *PostgresStoreSuite) TestConcurrentUniqueTaxIDViolation() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			org := newTestOrganization("99999999000100")
			err := s.store.Create(ctx, org)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, store.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")

	found, err := s.store.FindByTaxID(ctx, "99999999000100")
	s.Require().NoError(err)
	s.NotNil(found)
}
