package domain

import "time"

// Role identifies what an authenticated user may do.
type Role string

const (
	RoleManager    Role = "MANAGER"
	RoleDispatcher Role = "DISPATCHER"
	RoleSafety     Role = "SAFETY"
	RoleFinance    Role = "FINANCE"
	RoleDriver     Role = "DRIVER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleDispatcher, RoleSafety, RoleFinance, RoleDriver:
		return true
	}
	return false
}

// User represents an operator account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
