package store

import (
	"context"
	"errors"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep the surface tidy and let transaction
// scoping reuse the same repository code.
type Store interface {
	Users() Users
	Properties() Properties
	Memberships() Memberships
	Invitations() Invitations
	Documents() Documents

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Multi-write
	// operations that must be atomic (invitation acceptance) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	Properties() Properties
	Memberships() Memberships
	Invitations() Invitations
	Documents() Documents
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserRole sets the global role and bumps updated_at.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) error

	// DeleteUser cascades to memberships and owned properties (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Properties interface {
	GetPropertyByID(ctx context.Context, id string) (domain.Property, error)

	// ListProperties returns all properties, newest first. Admin view.
	ListProperties(ctx context.Context) ([]domain.Property, error)

	// ListPropertiesByOwner returns the owner's properties, newest first.
	ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)

	CreateProperty(ctx context.Context, p domain.Property) error

	// UpdateProperty replaces every mutable field. Ownership is immutable.
	UpdateProperty(ctx context.Context, p domain.Property) error

	// DeleteProperty cascades to documents, memberships and invitations.
	DeleteProperty(ctx context.Context, id string) error
}

type Memberships interface {
	// GetMembership fetches the membership for a (user, property) pair.
	GetMembership(ctx context.Context, userID, propertyID string) (domain.Membership, error)

	// ListMembershipsByProperty returns the property's memberships.
	ListMembershipsByProperty(ctx context.Context, propertyID string) ([]domain.Membership, error)

	// ListMembershipsByUser returns every membership the user holds.
	ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error)

	// CreateMembership inserts a membership. The unique (user_id, property_id)
	// constraint surfaces as ErrAlreadyExists so concurrent check-then-act
	// callers cannot both succeed.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// DeleteMembership removes the membership for a pair with the given role.
	// ErrNotFound when no such membership exists.
	DeleteMembership(ctx context.Context, userID, propertyID string, role domain.MembershipRole) error
}

type Invitations interface {
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByToken looks up by the unique raw token.
	GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error)

	// ListInvitationsByProperty returns the property's invitations, newest first.
	ListInvitationsByProperty(ctx context.Context, propertyID string) ([]domain.Invitation, error)

	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// MarkInvitationAccepted flips status to accepted and binds the new user,
	// but only while the row is still pending. ErrNotFound if the row was
	// already accepted, which makes double-acceptance lose the race cleanly.
	MarkInvitationAccepted(ctx context.Context, invitationID, invitedUserID string) error

	DeleteInvitation(ctx context.Context, id string) error

	// DeleteExpiredInvitations prunes pending invitations that expired before
	// the cutoff and reports how many rows were removed. Housekeeping only;
	// validation already rejects expired rows.
	DeleteExpiredInvitations(ctx context.Context, cutoff time.Time) (int64, error)
}

type Documents interface {
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	ListDocumentsByProperty(ctx context.Context, propertyID string) ([]domain.Document, error)

	CreateDocument(ctx context.Context, d domain.Document) error

	DeleteDocument(ctx context.Context, id string) error
}
