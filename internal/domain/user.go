package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a registered account within the platform.
type User struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Address   string
	Role      UserRole
	CreatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Identity is the verified subject extracted from a bearer credential.
type Identity struct {
	Email string
}

// UserProfileEdit carries the profile fields a user may change about
// themselves. Role membership is never part of a profile edit.
type UserProfileEdit struct {
	Name    *string
	Phone   *string
	Address *string
}
