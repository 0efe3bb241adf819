package storefront

import "strings"

// Role is the privilege level advertised by the token's role claim
type Role = string

const (
	// RoleAnonymous is a visitor without a session
	RoleAnonymous Role = "anonymous"
	// RoleUser is an authenticated shopper
	RoleUser Role = "user"
	// RoleAdmin can manage catalog, orders, and notifications
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleAnonymous, RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleIsAtLeast checks if role meets the minimum required level
func RoleIsAtLeast(r, minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleAnonymous: 0,
		RoleUser:      1,
		RoleAdmin:     2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleAnonymous,
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a Role. Unknown or empty strings
// degrade to RoleAnonymous so a bad claim never breaks the UI.
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	if !IsValidRole(role) {
		return RoleAnonymous, false
	}
	return role, true
}

// NormalizeRoleClaim maps backend role spellings onto the canonical lowercase
// form: "ROLE_ADMIN" and "ADMIN" both normalize to "admin".
func NormalizeRoleClaim(claim string) string {
	claim = strings.TrimPrefix(claim, "ROLE_")
	return strings.ToLower(claim)
}
