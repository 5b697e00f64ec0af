package domain

import "time"

// Role is a user's coarse global role. Effective permissions on a property
// come from Membership and ownership, not from this field alone.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
