package entity

import "time"

// Role values stored in the users.role column.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password.
// Image holds the avatar reference in the "/images/<filename>" form,
// empty when no avatar has been uploaded.
type User struct {
	ID        int
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	Image     string
	Password  string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the account carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
