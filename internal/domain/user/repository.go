package user

import "context"

// Repository defines the interface for account data access.
// This interface is defined in the domain layer, but implemented in the
// infrastructure layer.
type Repository interface {
	// Create registers a new account.
	Create(ctx context.Context, params CreateUserParams) (*User, error)

	// GetByID retrieves an account by its ID.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves an account by its unique email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored credential for the account
	// registered under email.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
