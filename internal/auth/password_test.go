package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 2*saltBytes)
	assert.NotEqual(t, s1, s2, "salts must be unpredictable")

	_, err = hex.DecodeString(s1)
	assert.NoError(t, err, "salt should be hex")
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	h1 := HashPassword("hunter2", salt)
	h2 := HashPassword("hunter2", salt)
	assert.Equal(t, h1, h2, "same password and salt must hash identically")
	assert.Len(t, h1, 2*hashKeyLen)
}

func TestHashPassword_SaltSeparatesIdenticalPasswords(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	assert.NotEqual(t, HashPassword("hunter2", s1), HashPassword("hunter2", s2))
}

func TestHashPassword_DifferentPasswords(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	assert.NotEqual(t, HashPassword("hunter2", salt), HashPassword("hunter3", salt))
}
