// Package policy holds the authorization rules for properties and users.
// It is deliberately pure: callers resolve the relevant records and
// memberships from the store, then ask policy for a decision. Keeping the
// rules in one place means every handler authorizes the same way.
package policy

import (
	"errors"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
)

var (
	// ErrForbidden means the caller's role, ownership, and membership grant
	// no right to perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfAction means the caller attempted an admin action on their own
	// account, which is never allowed.
	ErrSelfAction = errors.New("cannot perform this action on your own account")
)

// PropertyAction is something a user can attempt against a property.
type PropertyAction string

const (
	PropertyView          PropertyAction = "view"
	PropertyUpdate        PropertyAction = "update"
	PropertyDelete        PropertyAction = "delete"
	PropertyInvite        PropertyAction = "invite"
	PropertyManageTenants PropertyAction = "manage_tenants"
	PropertyAddDocument   PropertyAction = "add_document"
	PropertyViewDocument  PropertyAction = "view_document"
)

// UserAction is something a user can attempt against another user's account.
type UserAction string

const (
	UserChangeRole UserAction = "change_role"
	UserDelete     UserAction = "delete"
)

// CanActOnProperty decides whether caller may perform action on property.
// membership is the caller's membership on the property, or nil when they
// hold none. Admins and the owning landlord may do anything; plain members
// are limited to read actions.
func CanActOnProperty(caller domain.User, property domain.Property, membership *domain.Membership, action PropertyAction) error {
	if caller.Role == domain.RoleAdmin {
		return nil
	}
	if caller.ID == property.OwnerID {
		return nil
	}
	if membership != nil {
		switch action {
		case PropertyView, PropertyViewDocument:
			return nil
		}
	}
	return ErrForbidden
}

// CanActOnUser decides whether caller may perform an account-level action on
// target. Only admins hold these rights, and never against themselves: an
// admin demoting or deleting their own account could lock the system out of
// administration entirely.
func CanActOnUser(caller domain.User, target domain.User, action UserAction) error {
	if caller.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if caller.ID == target.ID {
		switch action {
		case UserChangeRole, UserDelete:
			return ErrSelfAction
		}
	}
	return nil
}
