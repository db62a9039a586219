package section

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists homepage sections
type Repository interface {
	// FindByID finds a section by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Section, error)

	// FindAll returns every section ordered by order, then creation time
	FindAll(ctx context.Context) ([]Section, error)

	// Save creates or updates a section
	Save(ctx context.Context, s *Section) error

	// Delete removes a section
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateOrders applies every assignment in one transaction; either all
	// orders change or none do
	UpdateOrders(ctx context.Context, assignments []shared.OrderAssignment) error
}
