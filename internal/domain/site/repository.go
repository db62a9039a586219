package site

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists one flat collection
type Repository[T Entity] interface {
	// FindByID finds an entity by its ID
	FindByID(ctx context.Context, id uuid.UUID) (T, error)

	// FindAll lists entities; ordered collections sort by order first
	FindAll(ctx context.Context, filter shared.Filter) ([]T, error)

	// Count counts entities matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an entity
	Save(ctx context.Context, entity T) error

	// Delete removes an entity
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderedRepository adds atomic batch reordering
type OrderedRepository[T Ordered] interface {
	Repository[T]

	// UpdateOrders applies every assignment in one transaction
	UpdateOrders(ctx context.Context, assignments []shared.OrderAssignment) error
}

// ServiceRepository adds slug lookup for the public service page
type ServiceRepository interface {
	Repository[*Service]

	// FindBySlug returns the earliest created service with the slug
	FindBySlug(ctx context.Context, slug string) (*Service, error)
}
