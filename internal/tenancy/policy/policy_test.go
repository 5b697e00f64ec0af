package policy

import (
	"testing"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/stretchr/testify/require"
)

func TestCanActOnProperty(t *testing.T) {
	t.Parallel()

	admin := domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	owner := domain.User{ID: "landlord-1", Role: domain.RoleLandlord}
	otherLandlord := domain.User{ID: "landlord-2", Role: domain.RoleLandlord}
	tenant := domain.User{ID: "tenant-1", Role: domain.RoleTenant}

	property := domain.Property{ID: "prop-1", OwnerID: owner.ID}
	tenantMembership := &domain.Membership{
		UserID:     tenant.ID,
		PropertyID: property.ID,
		Role:       domain.MembershipTenant,
	}

	t.Run("admin may perform any action", func(t *testing.T) {
		for _, action := range []PropertyAction{
			PropertyView, PropertyUpdate, PropertyDelete,
			PropertyInvite, PropertyManageTenants,
			PropertyAddDocument, PropertyViewDocument,
		} {
			require.NoError(t, CanActOnProperty(admin, property, nil, action))
		}
	})

	t.Run("owner may perform any action", func(t *testing.T) {
		for _, action := range []PropertyAction{
			PropertyView, PropertyUpdate, PropertyDelete,
			PropertyInvite, PropertyManageTenants,
			PropertyAddDocument, PropertyViewDocument,
		} {
			require.NoError(t, CanActOnProperty(owner, property, nil, action))
		}
	})

	t.Run("tenant member may only read", func(t *testing.T) {
		require.NoError(t, CanActOnProperty(tenant, property, tenantMembership, PropertyView))
		require.NoError(t, CanActOnProperty(tenant, property, tenantMembership, PropertyViewDocument))

		for _, action := range []PropertyAction{
			PropertyUpdate, PropertyDelete, PropertyInvite,
			PropertyManageTenants, PropertyAddDocument,
		} {
			require.ErrorIs(t, CanActOnProperty(tenant, property, tenantMembership, action), ErrForbidden)
		}
	})

	t.Run("non-member is forbidden everything", func(t *testing.T) {
		for _, action := range []PropertyAction{
			PropertyView, PropertyUpdate, PropertyDelete,
			PropertyInvite, PropertyManageTenants,
			PropertyAddDocument, PropertyViewDocument,
		} {
			require.ErrorIs(t, CanActOnProperty(otherLandlord, property, nil, action), ErrForbidden)
			require.ErrorIs(t, CanActOnProperty(tenant, property, nil, action), ErrForbidden)
		}
	})
}

func TestCanActOnUser(t *testing.T) {
	t.Parallel()

	admin := domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	landlord := domain.User{ID: "landlord-1", Role: domain.RoleLandlord}
	tenant := domain.User{ID: "tenant-1", Role: domain.RoleTenant}

	t.Run("admin may act on other accounts", func(t *testing.T) {
		require.NoError(t, CanActOnUser(admin, landlord, UserChangeRole))
		require.NoError(t, CanActOnUser(admin, tenant, UserDelete))
	})

	t.Run("admin may never act on themselves", func(t *testing.T) {
		require.ErrorIs(t, CanActOnUser(admin, admin, UserChangeRole), ErrSelfAction)
		require.ErrorIs(t, CanActOnUser(admin, admin, UserDelete), ErrSelfAction)
	})

	t.Run("non-admins are forbidden", func(t *testing.T) {
		require.ErrorIs(t, CanActOnUser(landlord, tenant, UserChangeRole), ErrForbidden)
		require.ErrorIs(t, CanActOnUser(tenant, landlord, UserDelete), ErrForbidden)
		require.ErrorIs(t, CanActOnUser(landlord, landlord, UserDelete), ErrForbidden)
	})
}
