// Package actor provides the identity roles that gate workflow transitions.
// Actors themselves (authentication, profiles) are owned by the external
// identity provider; the domain only cares about the role an actor carries.
package actor

import (
	"fmt"

	"falcon/internal/pkg/errs"
)

// Role represents the permission level of an authenticated actor.
// Roles gate which status transitions an actor may perform.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAppraiser performs the appraisal work on assigned orders.
	RoleAppraiser

	// RoleReviewer reviews submitted appraisals and approves or rejects them.
	RoleReviewer

	// RoleAdmin manages the back office. Admins may perform any transition a
	// lower role could, plus manual overrides.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "unknown",
		RoleAppraiser: "appraiser",
		RoleReviewer:  "reviewer",
		RoleAdmin:     "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAppraiser: "appraiser",
		RoleReviewer:  "reviewer",
		RoleAdmin:     "admin",
	}
}

// RoleFromString parses the wire form of a role ("admin", "reviewer", "appraiser").
// Returns an error for unrecognized role names.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleAppraiser, RoleReviewer, RoleAdmin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire form of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
