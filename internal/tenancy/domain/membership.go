package domain

import "time"

// MembershipRole is the role a user holds on a specific property.
type MembershipRole string

const (
	MembershipLandlord MembershipRole = "landlord"
	MembershipTenant   MembershipRole = "tenant"
)

// Membership links a user to a property with a role. At most one membership
// exists per (user, property) pair; the store enforces this with a unique
// constraint.
type Membership struct {
	ID         string
	UserID     string
	PropertyID string
	Role       MembershipRole
	CreatedAt  time.Time
}
