package account

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role represents the access level of an account.
// It is a closed enumeration: every authorization decision matches
// exhaustively over Admin and Driver, so adding a role is a
// compile-time-visible change.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin grants supervisory rights: creating deliveries,
	// listing orders and managing drivers.
	RoleAdmin

	// RoleDriver grants rights over deliveries assigned to the account.
	// Driver is the default role at registration.
	RoleDriver
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleAdmin:   "admin",
		RoleDriver:  "driver",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAdmin:  "admin",
		RoleDriver: "driver",
	}
}

// RoleFromString parses a wire representation into a Role.
// Returns an error for anything other than "admin" or "driver".
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are Admin and Driver; RoleUnknown and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsAdmin reports whether the role grants supervisory rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsDriver reports whether the role is Driver.
func (r Role) IsDriver() bool {
	return r == RoleDriver
}
