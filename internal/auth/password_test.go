package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, h.CheckPasswordHash("secret1", hash))
	assert.False(t, h.CheckPasswordHash("wrong", hash))

	h.CompareDummy("anything")
}

func TestNewPasswordHasher_FallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
}

func TestHashPassword_LimitIsBytes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.HashPassword(strings.Repeat("ж", 37)) // 74 байта
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.HashPassword(strings.Repeat("ж", 36))
	assert.NoError(t, err)
}
