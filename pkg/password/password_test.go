package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "ponto/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash, "hash must never equal the plaintext")
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected a bcrypt hash")

	assert.NoError(t, Verify("secret123", hash))
	assert.Error(t, Verify("wrong", hash))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 100))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHashesAreSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash1, err := h.Hash("secret123")
	require.NoError(t, err)
	hash2, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "bcrypt salts must differ per hash")
}

func TestCostFallsBackToDefault(t *testing.T) {
	h := NewHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
