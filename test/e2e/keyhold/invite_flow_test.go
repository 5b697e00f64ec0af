package keyhold_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/keyhold/keyhold/pkg/api"
	"github.com/stretchr/testify/require"
)

// TestInviteFlow drives the whole invitation lifecycle through the public
// API: a landlord registers, creates a property, invites a tenant by email,
// and the tenant redeems the link into an account with access to the
// property.
func TestInviteFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	landlord, _ := registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")
	property := createProperty(t, landlord, "Sunny Flat")

	// Mint the invitation.
	invitation, err := landlord.CreateInvitation(ctx, property.ID, "tess@example.com")
	require.NoError(t, err)
	require.Equal(t, "pending", invitation.Status)
	require.Contains(t, invitation.InviteLink, "/invite/")

	token := invitation.InviteLink[strings.LastIndex(invitation.InviteLink, "/")+1:]
	require.Len(t, token, 64)

	// The invitee previews without authenticating.
	preview, err := base.GetInvite(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "tess@example.com", preview.Email)
	require.Equal(t, "Sunny Flat", preview.Property.Name)

	// Redeem into a tenant account.
	tenantUser, err := base.AcceptInvite(ctx, token, api.AcceptInviteRequest{
		Username: "tess",
		Password: "another passphrase",
	})
	require.NoError(t, err)
	require.Equal(t, "tenant", tenantUser.Role)

	// The token is single-use.
	_, err = base.AcceptInvite(ctx, token, api.AcceptInviteRequest{
		Username: "tess2",
		Password: "another passphrase",
	})
	requireAPIError(t, err, http.StatusConflict, "invite_accepted")

	// The new tenant logs in and sees the property.
	login, err := base.Login(ctx, "tess", "another passphrase")
	require.NoError(t, err)
	tenant := base.WithToken(login.Token)

	properties, err := tenant.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	require.Equal(t, property.ID, properties[0].ID)

	// And appears on the landlord's roster.
	roster, err := landlord.ListTenants(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, "tess", roster[0].Username)

	// But cannot manage the property.
	_, err = tenant.CreateInvitation(ctx, property.ID, "friend@example.com")
	requireAPIError(t, err, http.StatusForbidden, "forbidden")
}

func TestInviteRevocation(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	landlord, _ := registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")
	property := createProperty(t, landlord, "Sunny Flat")

	invitation, err := landlord.CreateInvitation(ctx, property.ID, "tess@example.com")
	require.NoError(t, err)

	require.NoError(t, landlord.RevokeInvitation(ctx, invitation.ID))

	// The link dies with the record.
	token := invitation.InviteLink[strings.LastIndex(invitation.InviteLink, "/")+1:]
	_, err = base.GetInvite(ctx, token)
	requireAPIError(t, err, http.StatusNotFound, "not_found")

	invitations, err := landlord.ListInvitations(ctx, property.ID)
	require.NoError(t, err)
	require.Empty(t, invitations)
}

func TestInviteUnknownToken(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	base := api.NewClient(baseURL)

	_, err := base.GetInvite(context.Background(), strings.Repeat("ab", 32))
	requireAPIError(t, err, http.StatusNotFound, "not_found")
}
