package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/policy"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/cryptox"
	"github.com/keyhold/keyhold/pkg/idx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// InvitationService owns the invitation lifecycle: mint, preview, accept,
// revoke. BaseURL is the public origin used to build acceptance links.
type InvitationService struct {
	Store   store.Store
	BaseURL string
}

// InvitationPreview is what an unauthenticated token holder may see before
// deciding to accept.
type InvitationPreview struct {
	Email     string
	ExpiresAt time.Time
	Property  domain.PropertySummary
}

// InviteLink builds the public acceptance URL for a token.
func (s *InvitationService) InviteLink(token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/invite/" + token
}

// CreateInvitation mints a pending invitation for an email address to join a
// property as a tenant. Only the owner or an admin may invite. If the email
// already belongs to a member of the property the invitation is refused.
func (s *InvitationService) CreateInvitation(ctx context.Context, callerID, propertyID, email string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Invitation{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Invitation{}, ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invitation{}, ErrValidation
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyInvite); err != nil {
		log.Warn("unauthorized invitation attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return domain.Invitation{}, err
	}

	// Refuse inviting someone who already belongs to the property.
	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		if m, err := callerMembership(ctx, s.Store, existing.ID, property.ID); err != nil {
			return domain.Invitation{}, err
		} else if m != nil {
			log.Warn("invitation refused for existing member",
				slog.String("property_id", property.ID),
				slog.String("user_id", existing.ID),
			)
			return domain.Invitation{}, ErrAlreadyMember
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, err
	}

	token, err := cryptox.GenerateInviteToken()
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	invitation := domain.Invitation{
		ID:          idx.New().String(),
		Token:       token,
		Email:       email,
		PropertyID:  property.ID,
		InvitedByID: caller.ID,
		Status:      domain.InvitationPending,
		ExpiresAt:   time.Now().UTC().Add(domain.InvitationTTL),
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, invitation); err != nil {
		log.Error("failed to create invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", invitation.ID),
		slog.String("property_id", property.ID),
		slog.String("invited_by", caller.ID),
		slog.Time("expires_at", invitation.ExpiresAt),
	)
	return invitation, nil
}

// ListInvitations returns a property's invitations to its owner or an admin.
func (s *InvitationService) ListInvitations(ctx context.Context, callerID, propertyID string) ([]domain.Invitation, error) {
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
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyInvite); err != nil {
		return nil, err
	}

	return s.Store.Invitations().ListInvitationsByProperty(ctx, property.ID)
}

// GetInvitationByToken validates a raw token and returns the invitee-visible
// preview. Acceptance state is checked before expiry: an accepted invitation
// is terminal and reports as accepted even when its window has also passed.
func (s *InvitationService) GetInvitationByToken(ctx context.Context, token string) (InvitationPreview, error) {
	invitation, property, err := s.validateToken(ctx, token)
	if err != nil {
		return InvitationPreview{}, err
	}

	return InvitationPreview{
		Email:     invitation.Email,
		ExpiresAt: invitation.ExpiresAt,
		Property:  property.Summary(),
	}, nil
}

// AcceptInvitation redeems a token by creating a tenant account, a tenant
// membership on the property, and marking the invitation accepted. The three
// writes happen in one transaction so a failure anywhere leaves no trace.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrValidation
	}

	invitation, property, err := s.validateToken(ctx, token)
	if err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, invitation.Email); err == nil {
		return domain.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        invitation.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleTenant,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}

		membership := domain.Membership{
			ID:         idx.New().String(),
			UserID:     user.ID,
			PropertyID: property.ID,
			Role:       domain.MembershipTenant,
		}
		if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return err
		}

		// The pending-only guard in the store makes a concurrent
		// double-accept fail here and roll the whole transaction back.
		if err := tx.Invitations().MarkInvitationAccepted(ctx, invitation.ID, user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyAccepted
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Warn("invitation acceptance failed",
			slog.String("invitation_id", invitation.ID),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", invitation.ID),
		slog.String("property_id", property.ID),
		slog.String("user_id", user.ID),
	)
	return user, nil
}

// RevokeInvitation deletes a pending invitation outright. Accepted
// invitations are terminal and cannot be revoked.
func (s *InvitationService) RevokeInvitation(ctx context.Context, callerID, invitationID string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	invitation, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, invitation.PropertyID)
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
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyInvite); err != nil {
		log.Warn("unauthorized invitation revoke attempt",
			slog.String("user_id", caller.ID),
			slog.String("invitation_id", invitation.ID),
		)
		return err
	}

	if invitation.Status != domain.InvitationPending {
		return ErrInvalidState
	}

	if err := s.Store.Invitations().DeleteInvitation(ctx, invitation.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	log.Info("invitation revoked",
		slog.String("invitation_id", invitation.ID),
		slog.String("property_id", property.ID),
	)
	return nil
}

// validateToken resolves a raw token to its invitation and property,
// enforcing the lifecycle guards in order: unknown tokens are not found,
// accepted is terminal, then expiry is computed against the clock.
func (s *InvitationService) validateToken(ctx context.Context, token string) (domain.Invitation, domain.Property, error) {
	if token == "" {
		return domain.Invitation{}, domain.Property{}, ErrNotFound
	}

	invitation, err := s.Store.Invitations().GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, domain.Property{}, ErrNotFound
		}
		return domain.Invitation{}, domain.Property{}, err
	}

	if invitation.Status == domain.InvitationAccepted {
		return domain.Invitation{}, domain.Property{}, ErrAlreadyAccepted
	}
	if invitation.Expired(time.Now().UTC()) {
		return domain.Invitation{}, domain.Property{}, ErrExpired
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, invitation.PropertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, domain.Property{}, ErrNotFound
		}
		return domain.Invitation{}, domain.Property{}, err
	}

	return invitation, property, nil
}
