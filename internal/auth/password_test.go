package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash := HashPassword("hunter22", salt)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("hunter22", salt, hash))
	assert.False(t, VerifyPassword("hunter23", salt, hash))
	assert.False(t, VerifyPassword("", salt, hash))
}

func TestHashPassword_SaltMatters(t *testing.T) {
	saltA, err := GenerateSalt()
	require.NoError(t, err)
	saltB, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	assert.NotEqual(t, HashPassword("hunter22", saltA), HashPassword("hunter22", saltB))
}
