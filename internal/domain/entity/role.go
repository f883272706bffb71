// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleSystemAdmin indicates a platform administrator.
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
	// RoleNormalUser indicates a regular user who rates stores.
	RoleNormalUser Role = "NORMAL_USER"
	// RoleStoreOwner indicates an account that owns one or more stores.
	RoleStoreOwner Role = "STORE_OWNER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleNormalUser, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// RoleFromString converts a string claim to a Role, reporting whether the
// value belongs to the closed role set.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
