package cryptox

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseEd25519Key(t *testing.T) {
	t.Parallel()

	pemKey, err := GenerateEd25519Key()
	require.NoError(t, err)
	require.Contains(t, string(pemKey), "PRIVATE KEY")

	key, err := ParseEd25519Key(pemKey)
	require.NoError(t, err)
	require.Len(t, key, ed25519.PrivateKeySize)

	// Round-trip: signing with the parsed key must verify.
	msg := []byte("signed message")
	sig := ed25519.Sign(key, msg)
	require.True(t, ed25519.Verify(key.Public().(ed25519.PublicKey), msg, sig))
}

func TestParseEd25519KeyRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseEd25519Key([]byte("not a pem block"))
	require.Error(t, err)
}
