package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/cryptox"
	"github.com/keyhold/keyhold/pkg/idx"
	"github.com/keyhold/keyhold/pkg/jwtx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// AuthService handles registration, login, and the session profile.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Register creates a new landlord or tenant account. Admin accounts are never
// self-registered; they are promoted by an existing admin.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role domain.Role) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, ErrValidation
	}
	if role == "" {
		role = domain.RoleLandlord
	}
	if role == domain.RoleAdmin || !domain.ValidRole(role) {
		return domain.User{}, ErrValidation
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
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
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Raced another registration for the same username or email.
			return domain.User{}, ErrUsernameTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// usernames and wrong passwords produce the same error so the response does
// not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempt for unknown username")
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempt with wrong password",
				slog.String("user_id", user.ID),
			)
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(user.ID, user.Username, string(user.Role), ttl, s.Issuer, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, user, nil
}

// Me returns the authenticated user's own record.
func (s *AuthService) Me(ctx context.Context, callerID string) (domain.User, error) {
	return resolveCaller(ctx, s.Store, callerID)
}
