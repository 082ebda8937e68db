package domain

import "time"

// Roles an account can hold. Role is assigned at registration and never
// changes afterwards.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Account represents a registered member of the organization.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsTeacher reports whether the account holds the teacher role.
func (a *Account) IsTeacher() bool {
	return a.Role == RoleTeacher
}

// ValidRole reports whether role is one of the accepted registration roles.
func ValidRole(role string) bool {
	return role == RoleTeacher || role == RoleStudent
}

// Claims is the identity payload bound into an access token.
type Claims struct {
	Email string
	Role  string
}
