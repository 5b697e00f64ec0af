package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/policy"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// AdminService handles account-level administration. Every operation here is
// admin-only and re-resolves the caller's role from storage, never from
// token claims.
type AdminService struct {
	Store store.Store
}

// ListUsers returns every account. Admin only.
func (s *AdminService) ListUsers(ctx context.Context, callerID string) ([]domain.User, error) {
	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Store.Users().ListUsers(ctx)
}

// ChangeUserRole sets another user's global role. Admins cannot change their
// own role.
func (s *AdminService) ChangeUserRole(ctx context.Context, callerID, targetID string, role domain.Role) (domain.User, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.User{}, err
	}

	if !domain.ValidRole(role) {
		return domain.User{}, ErrValidation
	}

	target, err := s.Store.Users().GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}

	if err := policy.CanActOnUser(caller, target, policy.UserChangeRole); err != nil {
		log.Warn("unauthorized role change attempt",
			slog.String("user_id", caller.ID),
			slog.String("target_user_id", target.ID),
		)
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateUserRole(ctx, target.ID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		log.Error("failed to update user role", slog.Any("error", err))
		return domain.User{}, err
	}

	target.Role = role
	log.Info("user role changed",
		slog.String("target_user_id", target.ID),
		slog.String("role", string(role)),
		slog.String("changed_by", caller.ID),
	)
	return target, nil
}

// DeleteUser removes an account. The schema cascades to the user's
// memberships and owned properties. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	target, err := s.Store.Users().GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := policy.CanActOnUser(caller, target, policy.UserDelete); err != nil {
		log.Warn("unauthorized user delete attempt",
			slog.String("user_id", caller.ID),
			slog.String("target_user_id", target.ID),
		)
		return err
	}

	if err := s.Store.Users().DeleteUser(ctx, target.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete user", slog.Any("error", err))
		return err
	}

	log.Info("user deleted",
		slog.String("target_user_id", target.ID),
		slog.String("deleted_by", caller.ID),
	)
	return nil
}
