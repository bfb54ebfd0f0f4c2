package entity

import "time"

// Role is the single authorization role for a user.
// Admins may manage other users; everyone else only themselves.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleValues lists every valid role, in declaration order.
func RoleValues() []string {
	return []string{string(RoleUser), string(RoleAdmin)}
}

// User is the aggregate root for the user domain.
// PasswordHash is a bcrypt hash and must never be serialized to clients.
type User struct {
	ID           int64
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
