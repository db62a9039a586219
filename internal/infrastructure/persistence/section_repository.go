package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSectionRepository implements section.Repository for homepage sections
type GormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GormSectionRepository
func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// FindByID finds a section by its ID
func (r *GormSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*section.Section, error) {
	var model models.SectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every section ordered by order, then creation time
func (r *GormSectionRepository) FindAll(ctx context.Context) ([]section.Section, error) {
	var rows []models.SectionModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	sections := make([]section.Section, len(rows))
	for i := range rows {
		sections[i] = *rows[i].ToDomain()
	}
	return sections, nil
}

// Save creates or updates a section
func (r *GormSectionRepository) Save(ctx context.Context, s *section.Section) error {
	return r.db.WithContext(ctx).Save(models.SectionModelFromDomain(s)).Error
}

// Delete removes a section
func (r *GormSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SectionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateOrders writes every assignment inside one transaction. A missing row
// or a failed statement rolls back the whole batch.
func (r *GormSectionRepository) UpdateOrders(ctx context.Context, assignments []shared.OrderAssignment) error {
	return updateOrders(ctx, r.db, &models.SectionModel{}, assignments)
}

// updateOrders is shared by every table with a sort_order column
func updateOrders(ctx context.Context, db *gorm.DB, model interface{}, assignments []shared.OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			result := tx.Model(model).Where("id = ?", a.ID).Update("sort_order", a.Order)
			if result.Error != nil {
				return fmt.Errorf("update order of %s: %w", a.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound.WithMessage(fmt.Sprintf("No row with id %s", a.ID))
			}
		}
		return nil
	})
}

var _ section.Repository = (*GormSectionRepository)(nil)
