package service

import (
	"context"
	"errors"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/policy"
	"github.com/keyhold/keyhold/internal/tenancy/store"
)

// Service-level error taxonomy. Handlers branch on these with errors.Is to
// pick status codes; services never leak driver errors for expected cases.
var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid request")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrAlreadyMember      = errors.New("user is already a member of this property")
	ErrAlreadyAccepted    = errors.New("invitation has already been accepted")
	ErrExpired            = errors.New("invitation has expired")
	ErrInvalidState       = errors.New("invitation is not in a revocable state")

	// Authorization failures share identity with the policy package so a
	// single errors.Is covers both layers.
	ErrForbidden  = policy.ErrForbidden
	ErrSelfAction = policy.ErrSelfAction
)

// resolveCaller loads the authenticated caller's user record. Tokens outlive
// accounts, so a missing user means the session is no longer valid.
func resolveCaller(ctx context.Context, st store.Store, callerID string) (domain.User, error) {
	caller, err := st.Users().GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}
	return caller, nil
}

// callerMembership fetches the caller's membership on a property, or nil
// when they hold none.
func callerMembership(ctx context.Context, st store.Store, userID, propertyID string) (*domain.Membership, error) {
	m, err := st.Memberships().GetMembership(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
