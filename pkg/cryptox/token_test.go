package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteToken(t *testing.T) {
	t.Parallel()

	token, err := GenerateInviteToken()
	require.NoError(t, err)
	require.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	require.NoError(t, err)
}

func TestGenerateInviteTokenUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		token, err := GenerateInviteToken()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}
