package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	signer := NewSignerEdDSA(key)
	verifier := NewVerifierEdDSA(key, "keyhold")

	claims := NewSessionClaims("user-1", "alice", "landlord", time.Hour, "keyhold", time.Now())
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "landlord", got.Role)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer := NewSignerEdDSA(testKey(t))
	verifier := NewVerifierEdDSA(testKey(t), "keyhold")

	raw, err := signer.Sign(NewSessionClaims("user-1", "alice", "tenant", time.Hour, "keyhold", time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	signer := NewSignerEdDSA(key)
	verifier := NewVerifierEdDSA(key, "keyhold")

	claims := NewSessionClaims("user-1", "alice", "tenant", time.Hour, "keyhold", time.Now().Add(-2*time.Hour))
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	signer := NewSignerEdDSA(key)
	verifier := NewVerifierEdDSA(key, "keyhold")

	raw, err := signer.Sign(NewSessionClaims("user-1", "alice", "tenant", time.Hour, "someone-else", time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier := NewVerifierEdDSA(testKey(t), "keyhold")
	_, err := verifier.Verify("definitely.not.a-jwt")
	require.Error(t, err)
}
