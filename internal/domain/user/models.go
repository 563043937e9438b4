package user

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User represents a registered account owning ledger records.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUserParams carries the fields required to register an account.
// PasswordHash must already be a bcrypt credential, never a plaintext
// password.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}
