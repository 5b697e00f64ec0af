package service

import (
	"context"
	"testing"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{
		Store:      st,
		Signer:     newTestSigner(t),
		Issuer:     "keyhold-test",
		SessionTTL: time.Hour,
	}

	user, err := svc.Register(ctx, "lana", "Lana@Example.com", "a strong passphrase", domain.RoleLandlord)
	require.NoError(t, err)
	require.Equal(t, "lana", user.Username)
	require.Equal(t, "lana@example.com", user.Email)
	require.Equal(t, domain.RoleLandlord, user.Role)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "a strong passphrase", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "lana", "a strong passphrase")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, loggedIn.ID)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, me.Username)
}

func TestRegisterRejections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t), Issuer: "keyhold-test"}

	_, err := svc.Register(ctx, "lana", "lana@example.com", "a strong passphrase", domain.RoleLandlord)
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "lana", "other@example.com", "pw123456", domain.RoleLandlord)
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "lana2", "lana@example.com", "pw123456", domain.RoleLandlord)
		require.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("admin role cannot be self-registered", func(t *testing.T) {
		_, err := svc.Register(ctx, "boss", "boss@example.com", "pw123456", domain.RoleAdmin)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "nope", "pw123456", domain.RoleTenant)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "x@example.com", "pw123456", domain.RoleTenant)
		require.ErrorIs(t, err, ErrValidation)
		_, err = svc.Register(ctx, "x", "x@example.com", "", domain.RoleTenant)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t), Issuer: "keyhold-test"}

	_, err := svc.Register(ctx, "lana", "lana@example.com", "a strong passphrase", domain.RoleLandlord)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "lana", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username reports the same error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "a strong passphrase")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestMeUnknownUser(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}

	_, err := svc.Me(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUnauthorized)
}
