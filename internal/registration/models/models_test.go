package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ponto/pkg/domain-errors"
)

func TestNewOrganizationInvariants(t *testing.T) {
	t.Run("rejects empty legal name", func(t *testing.T) {
		_, err := NewOrganization("", "11111111000100")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects empty tax id", func(t *testing.T) {
		_, err := NewOrganization("Acme Ltd", "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("leaves ID unset for the store to assign", func(t *testing.T) {
		org, err := NewOrganization("Acme Ltd", "11111111000100")
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, org.ID)
	})
}

func TestNewPersonInvariants(t *testing.T) {
	orgID := uuid.New()

	t.Run("valid person", func(t *testing.T) {
		p, err := NewPerson("Ana", "ana@acme.com", "$2a$04$hash", "12345678900", RoleAdmin, orgID)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, p.Role)
		assert.Equal(t, orgID, p.OrganizationID)
		assert.Equal(t, uuid.Nil, p.ID)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewPerson("Ana", "ana@acme.com", "", "12345678900", RoleAdmin, orgID)
		require.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewPerson("Ana", "ana@acme.com", "$2a$04$hash", "12345678900", Role("root"), orgID)
		require.Error(t, err)
	})

	t.Run("rejects nil organization reference", func(t *testing.T) {
		_, err := NewPerson("Ana", "ana@acme.com", "$2a$04$hash", "12345678900", RoleAdmin, uuid.Nil)
		require.Error(t, err)
	})
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("root").IsValid())
}
