package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("mauvais mot de passe", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := HashPassword("même mot de passe")
	require.NoError(t, err)
	h2, err := HashPassword("même mot de passe")
	require.NoError(t, err)

	// Deux hashs du même mot de passe ne partagent jamais leur salt
	require.NotEqual(t, h1, h2)
}

func TestVerifyPassword_RejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("peu importe", "pas-un-hash")
	require.Error(t, err)
}
