package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPepper(t *testing.T) {
	t.Helper()
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	pepper = "" // force reload from the fresh path
}

func TestHashAndVerifyPassword(t *testing.T) {
	testPepper(t)

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("secret1", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	testPepper(t)

	a, err := HashPassword("secret1")
	require.NoError(t, err)
	b, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	testPepper(t)

	for _, hash := range []string{
		"",
		"plainly-not-a-hash",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!$aGFzaA",
	} {
		require.Error(t, VerifyPassword("secret1", hash), "hash %q", hash)
	}
}
