package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSingletonRepository implements site.SingletonRepository
type GormSingletonRepository struct {
	db *gorm.DB
}

// NewGormSingletonRepository creates a new GormSingletonRepository
func NewGormSingletonRepository(db *gorm.DB) *GormSingletonRepository {
	return &GormSingletonRepository{db: db}
}

// Find returns the document, or shared.ErrNotFound when never written
func (r *GormSingletonRepository) Find(ctx context.Context, collection string) (*site.Singleton, error) {
	var model models.SingletonModel
	if err := r.db.WithContext(ctx).Where("collection = ?", collection).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the document keyed by its collection
func (r *GormSingletonRepository) Save(ctx context.Context, s *site.Singleton) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	var model models.SingletonModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"doc_id", "data", "updated_at"}),
	}).Create(&model).Error
}

var _ site.SingletonRepository = (*GormSingletonRepository)(nil)
