package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/policy"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/idx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// MembershipService manages the tenant roster of a property.
type MembershipService struct {
	Store store.Store
}

// Tenant joins a membership with the user holding it.
type Tenant struct {
	Membership domain.Membership
	User       domain.User
}

// ListTenants returns the property's tenant roster to its owner, an admin,
// or one of its members.
func (s *MembershipService) ListTenants(ctx context.Context, callerID, propertyID string) ([]Tenant, error) {
	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return nil, err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyView); err != nil {
		return nil, err
	}

	memberships, err := s.Store.Memberships().ListMembershipsByProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	tenants := make([]Tenant, 0, len(memberships))
	for _, m := range memberships {
		if m.Role != domain.MembershipTenant {
			continue
		}
		user, err := s.Store.Users().GetUserByID(ctx, m.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		tenants = append(tenants, Tenant{Membership: m, User: user})
	}
	return tenants, nil
}

// AssignTenant adds an existing user to a property as a tenant without the
// invitation flow. Owner or admin only.
func (s *MembershipService) AssignTenant(ctx context.Context, callerID, propertyID, userID string) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Membership{}, err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNotFound
		}
		return domain.Membership{}, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return domain.Membership{}, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyManageTenants); err != nil {
		log.Warn("unauthorized tenant assignment attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return domain.Membership{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNotFound
		}
		return domain.Membership{}, err
	}

	m := domain.Membership{
		ID:         idx.New().String(),
		UserID:     user.ID,
		PropertyID: property.ID,
		Role:       domain.MembershipTenant,
	}
	if err := s.Store.Memberships().CreateMembership(ctx, m); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Membership{}, ErrAlreadyMember
		}
		log.Error("failed to create membership", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("tenant assigned",
		slog.String("property_id", property.ID),
		slog.String("user_id", user.ID),
	)
	return m, nil
}

// RemoveTenant takes a tenant off a property's roster. Owner or admin only.
// The user account itself is untouched.
func (s *MembershipService) RemoveTenant(ctx context.Context, callerID, propertyID, userID string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyManageTenants); err != nil {
		log.Warn("unauthorized tenant removal attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return err
	}

	if err := s.Store.Memberships().DeleteMembership(ctx, userID, property.ID, domain.MembershipTenant); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete membership", slog.Any("error", err))
		return err
	}

	log.Info("tenant removed",
		slog.String("property_id", property.ID),
		slog.String("user_id", userID),
	)
	return nil
}
