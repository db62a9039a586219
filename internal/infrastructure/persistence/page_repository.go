package persistence

import (
	"context"
	"errors"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var pageListOptions = listOptions{
	sortFields:    PageSortFields,
	defaultOrder:  "created_at DESC, id ASC",
	searchColumns: []string{"title", "slug"},
	filterColumns: map[string]bool{"visible": true},
}

// GormPageRepository implements page.Repository for one page kind.
// Every kind has its own table with the same shape.
type GormPageRepository struct {
	db   *gorm.DB
	kind page.Kind
}

// NewGormPageRepository creates a repository for the given page kind
func NewGormPageRepository(db *gorm.DB, kind page.Kind) *GormPageRepository {
	return &GormPageRepository{db: db, kind: kind}
}

// Kind returns the page kind this repository serves
func (r *GormPageRepository) Kind() page.Kind {
	return r.kind
}

func (r *GormPageRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.kind.Collection())
}

// FindByID finds a page by its ID
func (r *GormPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	var model models.PageModel
	if err := r.table(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(r.kind)
}

// FindPublishedBySlug returns the earliest created visible page with the slug
func (r *GormPageRepository) FindPublishedBySlug(ctx context.Context, slug string) (*page.Page, error) {
	var model models.PageModel
	if err := r.table(ctx).
		Where("slug = ? AND visible = ?", slug, true).
		Order("created_at ASC, id ASC").
		Limit(1).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(r.kind)
}

// CountBySlug counts pages sharing a slug
func (r *GormPageRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	if err := r.table(ctx).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll finds all pages matching the filter
func (r *GormPageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]page.Page, error) {
	query := pageListOptions.applyFilter(r.table(ctx), filter)
	query = applyPage(pageListOptions.applyOrder(query, filter), filter)

	var rows []models.PageModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	pages := make([]page.Page, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain(r.kind)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	return pages, nil
}

// Count counts pages matching the filter
func (r *GormPageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := pageListOptions.applyFilter(r.table(ctx), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save writes the page row, embedded sections included, in one statement
func (r *GormPageRepository) Save(ctx context.Context, p *page.Page) error {
	if p.Kind != r.kind {
		return page.ErrInvalidKind
	}
	var model models.PageModel
	if err := model.FromDomain(p); err != nil {
		return err
	}
	return r.table(ctx).Save(&model).Error
}

// Delete removes a page
func (r *GormPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.table(ctx).Where("id = ?", id).Delete(&models.PageModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ page.Repository = (*GormPageRepository)(nil)
