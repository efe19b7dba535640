// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// May replace records of the served snapshot
	RoleAdmin UserRole = "admin"

	// Regular signed-in user
	RoleUser UserRole = "user"

	// Signed-in user without an account role (e.g. an API key holder)
	RoleGuest UserRole = "guest"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleUser:
		return 20
	case RoleGuest:
		return 10
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}
