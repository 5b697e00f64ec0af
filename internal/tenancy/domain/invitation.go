package domain

import "time"

// InvitationStatus is a stored lifecycle state. There is no stored "expired"
// or "revoked" state: expiry is computed against ExpiresAt at validation
// time, and revocation deletes the record outright.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// InvitationTTL is how long a fresh invitation stays acceptable.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation is a single-use, time-limited token granting its holder the
// right to register as a tenant of one property. Once accepted it is
// terminal: InvitedUserID is bound and the token can never be redeemed again.
type Invitation struct {
	ID            string
	Token         string // 64 hex chars, unique
	Email         string
	PropertyID    string
	InvitedByID   string
	Status        InvitationStatus
	InvitedUserID string // empty until accepted
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expired reports whether the invitation's validity window has passed at now.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
