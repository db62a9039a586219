package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for admin user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *AdminUser) error

	// Update updates an existing user
	Update(ctx context.Context, user *AdminUser) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)

	// FindByEmail finds a user by lower-cased email
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
