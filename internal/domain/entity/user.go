package entity

import "time"

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string
	Email     string
	Username  string
	Bio       *string
	Image     *string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
