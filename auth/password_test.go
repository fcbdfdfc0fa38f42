package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	p := NewPasswordHasher(bcrypt.MinCost)

	hashed, err := p.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	ok, err := p.Verify("secret123", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Verify("wrong", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasherSalts(t *testing.T) {
	p := NewPasswordHasher(bcrypt.MinCost)

	a, err := p.Hash("same-password")
	require.NoError(t, err)
	b, err := p.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasherMalformedHash(t *testing.T) {
	p := NewPasswordHasher(bcrypt.MinCost)

	ok, err := p.Verify("secret123", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewPasswordHasherCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func TestHashUsesConfiguredCost(t *testing.T) {
	p := NewPasswordHasher(bcrypt.MinCost)

	hashed, err := p.Hash("secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
