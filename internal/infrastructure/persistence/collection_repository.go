package persistence

import (
	"context"
	"errors"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// entityModel is a persistence model *M that converts to and from domain entity T
type entityModel[T any, M any] interface {
	*M
	ToDomain() T
	FromDomain(T)
}

// GormCollectionRepository implements site.Repository for one flat collection
type GormCollectionRepository[T site.Entity, M any, PM entityModel[T, M]] struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormCollectionRepository creates a repository over the table of model M
func NewGormCollectionRepository[T site.Entity, M any, PM entityModel[T, M]](db *gorm.DB, opts listOptions) *GormCollectionRepository[T, M, PM] {
	return &GormCollectionRepository[T, M, PM]{db: db, opts: opts}
}

// FindByID finds an entity by its ID
func (r *GormCollectionRepository[T, M, PM]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	model := new(M)
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, shared.ErrNotFound
		}
		return zero, err
	}
	return PM(model).ToDomain(), nil
}

// FindAll lists entities matching the filter
func (r *GormCollectionRepository[T, M, PM]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	query := r.opts.applyFilter(r.db.WithContext(ctx).Model(new(M)), filter)
	query = applyPage(r.opts.applyOrder(query, filter), filter)

	var rows []M
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]T, len(rows))
	for i := range rows {
		items[i] = PM(&rows[i]).ToDomain()
	}
	return items, nil
}

// Count counts entities matching the filter
func (r *GormCollectionRepository[T, M, PM]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.opts.applyFilter(r.db.WithContext(ctx).Model(new(M)), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entity
func (r *GormCollectionRepository[T, M, PM]) Save(ctx context.Context, entity T) error {
	model := new(M)
	PM(model).FromDomain(entity)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an entity
func (r *GormCollectionRepository[T, M, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormOrderedRepository adds atomic batch reordering over a sort_order column
type GormOrderedRepository[T site.Ordered, M any, PM entityModel[T, M]] struct {
	*GormCollectionRepository[T, M, PM]
}

// UpdateOrders applies every assignment in one transaction
func (r *GormOrderedRepository[T, M, PM]) UpdateOrders(ctx context.Context, assignments []shared.OrderAssignment) error {
	return updateOrders(ctx, r.db, new(M), assignments)
}

// GormServiceRepository adds slug lookup to the services collection
type GormServiceRepository struct {
	*GormCollectionRepository[*site.Service, models.ServiceModel, *models.ServiceModel]
}

// FindBySlug returns the earliest created service with the slug
func (r *GormServiceRepository) FindBySlug(ctx context.Context, slug string) (*site.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at ASC, id ASC").
		Limit(1).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NewGormClientRepository creates the clients repository
func NewGormClientRepository(db *gorm.DB) *GormCollectionRepository[*site.Client, models.ClientModel, *models.ClientModel] {
	return NewGormCollectionRepository[*site.Client, models.ClientModel](db, listOptions{
		sortFields:    ClientSortFields,
		defaultOrder:  "name ASC, id ASC",
		searchColumns: []string{"name"},
	})
}

// NewGormTeamMemberRepository creates the team members repository
func NewGormTeamMemberRepository(db *gorm.DB) *GormOrderedRepository[*site.TeamMember, models.TeamMemberModel, *models.TeamMemberModel] {
	return &GormOrderedRepository[*site.TeamMember, models.TeamMemberModel, *models.TeamMemberModel]{
		GormCollectionRepository: NewGormCollectionRepository[*site.TeamMember, models.TeamMemberModel](db, listOptions{
			sortFields:    TeamMemberSortFields,
			defaultOrder:  "sort_order ASC, created_at ASC, id ASC",
			searchColumns: []string{"name", "role"},
		}),
	}
}

// NewGormServiceRepository creates the services repository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{
		GormCollectionRepository: NewGormCollectionRepository[*site.Service, models.ServiceModel](db, listOptions{
			sortFields:    ServiceSortFields,
			defaultOrder:  "created_at ASC, id ASC",
			searchColumns: []string{"title", "slug", "summary"},
		}),
	}
}

// NewGormTestimonialRepository creates the testimonials repository
func NewGormTestimonialRepository(db *gorm.DB) *GormCollectionRepository[*site.Testimonial, models.TestimonialModel, *models.TestimonialModel] {
	return NewGormCollectionRepository[*site.Testimonial, models.TestimonialModel](db, listOptions{
		sortFields:    TestimonialSortFields,
		defaultOrder:  "created_at DESC, id ASC",
		searchColumns: []string{"author_name", "company", "quote"},
		filterColumns: map[string]bool{"rating": true},
	})
}

// NewGormFunnelStepRepository creates the funnel steps repository
func NewGormFunnelStepRepository(db *gorm.DB) *GormCollectionRepository[*site.FunnelStep, models.FunnelStepModel, *models.FunnelStepModel] {
	return NewGormCollectionRepository[*site.FunnelStep, models.FunnelStepModel](db, listOptions{
		sortFields:    FunnelStepSortFields,
		defaultOrder:  "step ASC, created_at ASC, id ASC",
		searchColumns: []string{"title"},
	})
}

// NewGormPortfolioItemRepository creates the portfolio repository
func NewGormPortfolioItemRepository(db *gorm.DB) *GormOrderedRepository[*site.PortfolioItem, models.PortfolioItemModel, *models.PortfolioItemModel] {
	return &GormOrderedRepository[*site.PortfolioItem, models.PortfolioItemModel, *models.PortfolioItemModel]{
		GormCollectionRepository: NewGormCollectionRepository[*site.PortfolioItem, models.PortfolioItemModel](db, listOptions{
			sortFields:    PortfolioItemSortFields,
			defaultOrder:  "sort_order ASC, created_at ASC, id ASC",
			searchColumns: []string{"title", "category"},
			filterColumns: map[string]bool{"category": true},
		}),
	}
}

var (
	_ site.Repository[*site.Client]               = (*GormCollectionRepository[*site.Client, models.ClientModel, *models.ClientModel])(nil)
	_ site.OrderedRepository[*site.TeamMember]    = (*GormOrderedRepository[*site.TeamMember, models.TeamMemberModel, *models.TeamMemberModel])(nil)
	_ site.ServiceRepository                      = (*GormServiceRepository)(nil)
	_ site.Repository[*site.Testimonial]          = (*GormCollectionRepository[*site.Testimonial, models.TestimonialModel, *models.TestimonialModel])(nil)
	_ site.Repository[*site.FunnelStep]           = (*GormCollectionRepository[*site.FunnelStep, models.FunnelStepModel, *models.FunnelStepModel])(nil)
	_ site.OrderedRepository[*site.PortfolioItem] = (*GormOrderedRepository[*site.PortfolioItem, models.PortfolioItemModel, *models.PortfolioItemModel])(nil)
)
