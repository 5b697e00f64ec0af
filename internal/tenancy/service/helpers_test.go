package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store/drivers/sqlite"
	"github.com/keyhold/keyhold/pkg/cryptox"
	"github.com/keyhold/keyhold/pkg/idx"
	"github.com/keyhold/keyhold/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner(t *testing.T) *jwtx.EdDSASigner {
	t.Helper()

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return jwtx.NewSignerEdDSA(key)
}

// seedUser inserts a user directly, bypassing registration.
func seedUser(t *testing.T, st *sqlite.Store, username, email string, role domain.Role) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

// seedProperty inserts a property owned by ownerID.
func seedProperty(t *testing.T, st *sqlite.Store, ownerID, name string) domain.Property {
	t.Helper()

	property := domain.Property{
		ID:           idx.New().String(),
		OwnerID:      ownerID,
		Name:         name,
		AddressLine1: "1 High Street",
		City:         "Leeds",
		County:       "West Yorkshire",
		Postcode:     "LS1 1AA",
		PropertyType: "flat",
		Bedrooms:     2,
		Bathrooms:    1,
	}
	require.NoError(t, st.Properties().CreateProperty(context.Background(), property))
	return property
}

// seedMembership links a user to a property.
func seedMembership(t *testing.T, st *sqlite.Store, userID, propertyID string, role domain.MembershipRole) domain.Membership {
	t.Helper()

	m := domain.Membership{
		ID:         idx.New().String(),
		UserID:     userID,
		PropertyID: propertyID,
		Role:       role,
	}
	require.NoError(t, st.Memberships().CreateMembership(context.Background(), m))
	return m
}

// seedInvitation inserts a raw invitation record, letting tests control the
// expiry and status directly.
func seedInvitation(t *testing.T, st *sqlite.Store, propertyID, invitedByID, email string, status domain.InvitationStatus, expiresAt time.Time) domain.Invitation {
	t.Helper()

	token, err := cryptox.GenerateInviteToken()
	require.NoError(t, err)

	inv := domain.Invitation{
		ID:          idx.New().String(),
		Token:       token,
		Email:       email,
		PropertyID:  propertyID,
		InvitedByID: invitedByID,
		Status:      status,
		ExpiresAt:   expiresAt,
	}
	require.NoError(t, st.Invitations().CreateInvitation(context.Background(), inv))
	return inv
}
