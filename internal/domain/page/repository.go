package page

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists pages of one kind
type Repository interface {
	// Kind returns the page kind this repository serves
	Kind() Kind

	// FindByID finds a page by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Page, error)

	// FindPublishedBySlug returns the earliest created visible page with the
	// slug. Slugs are not unique in the store; hidden duplicates are skipped.
	FindPublishedBySlug(ctx context.Context, slug string) (*Page, error)

	// CountBySlug counts pages sharing a slug
	CountBySlug(ctx context.Context, slug string) (int64, error)

	// FindAll finds all pages matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Page, error)

	// Count counts pages matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a page with its embedded sections in one write
	Save(ctx context.Context, p *Page) error

	// Delete removes a page
	Delete(ctx context.Context, id uuid.UUID) error
}
