package domain

import "time"

// Role represents the authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	DisplayName  string
	Bio          string
	PhoneNumber  string
	AvatarPath   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
