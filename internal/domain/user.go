package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleRequester Role = "requester"
	RoleSupport   Role = "support"
	RoleAdmin     Role = "administrator"
)

// Valid reports whether the role is a known member of the enum.
func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// User models anyone who can authenticate: requesters, support agents and
// administrators share one table and are distinguished by Role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID *string
	CreatedAt    time.Time
}
