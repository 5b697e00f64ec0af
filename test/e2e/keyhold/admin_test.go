package keyhold_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/keyhold/keyhold/pkg/api"
	"github.com/stretchr/testify/require"
)

// No admin account can be self-registered, so admin tests promote through
// the API surface available to them: registration is refused, and the
// role-change endpoint is admin-only. That property itself is what these
// tests pin down.
func TestAdminEndpointsAreProtected(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	t.Run("admin role cannot be self-registered", func(t *testing.T) {
		_, err := base.Register(ctx, api.RegisterRequest{
			Username: "boss",
			Email:    "boss@example.com",
			Password: "a strong passphrase",
			Role:     "admin",
		})
		requireAPIError(t, err, http.StatusBadRequest, "invalid_request")
	})

	landlord, _ := registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")

	t.Run("landlord cannot list users", func(t *testing.T) {
		_, err := landlord.ListUsers(ctx)
		requireAPIError(t, err, http.StatusForbidden, "forbidden")
	})

	t.Run("landlord cannot change roles", func(t *testing.T) {
		tenant, err := base.Register(ctx, api.RegisterRequest{
			Username: "tess",
			Email:    "tess@example.com",
			Password: "a strong passphrase",
			Role:     "tenant",
		})
		require.NoError(t, err)

		_, err = landlord.ChangeUserRole(ctx, tenant.ID, "landlord")
		requireAPIError(t, err, http.StatusForbidden, "forbidden")
	})
}

func TestDuplicateRegistration(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")

	_, err := base.Register(ctx, api.RegisterRequest{
		Username: "lana",
		Email:    "other@example.com",
		Password: "a strong passphrase",
	})
	requireAPIError(t, err, http.StatusConflict, "username_taken")

	_, err = base.Register(ctx, api.RegisterRequest{
		Username: "lana2",
		Email:    "lana@example.com",
		Password: "a strong passphrase",
	})
	requireAPIError(t, err, http.StatusConflict, "user_exists")
}
