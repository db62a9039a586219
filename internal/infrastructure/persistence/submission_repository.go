package persistence

import (
	"context"
	"errors"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/submission"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	contactListOptions = listOptions{
		sortFields:    SubmissionSortFields,
		defaultOrder:  "created_at DESC, id ASC",
		searchColumns: []string{"name", "email", "subject"},
	}
	quoteListOptions = listOptions{
		sortFields:    SubmissionSortFields,
		defaultOrder:  "created_at DESC, id ASC",
		searchColumns: []string{"name", "email", "company", "service"},
		filterColumns: map[string]bool{"status": true},
	}
)

// GormContactRepository implements submission.ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create stores a new contact message
func (r *GormContactRepository) Create(ctx context.Context, c *submission.ContactSubmission) error {
	var model models.ContactSubmissionModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a contact message by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*submission.ContactSubmission, error) {
	var model models.ContactSubmissionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists contact messages, newest first by default
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]submission.ContactSubmission, error) {
	query := contactListOptions.applyFilter(r.db.WithContext(ctx).Model(&models.ContactSubmissionModel{}), filter)
	query = applyPage(contactListOptions.applyOrder(query, filter), filter)

	var rows []models.ContactSubmissionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]submission.ContactSubmission, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts contact messages matching the filter
func (r *GormContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := contactListOptions.applyFilter(r.db.WithContext(ctx).Model(&models.ContactSubmissionModel{}), filter).
		Count(&count).Error
	return count, err
}

// Delete removes a contact message
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ContactSubmissionModel{}, id)
}

// GormQuoteRepository implements submission.QuoteRepository
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Create stores a new quote request
func (r *GormQuoteRepository) Create(ctx context.Context, q *submission.QuoteRequest) error {
	var model models.QuoteRequestModel
	model.FromDomain(q)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a quote request by ID
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*submission.QuoteRequest, error) {
	var model models.QuoteRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists quote requests, newest first by default
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]submission.QuoteRequest, error) {
	query := quoteListOptions.applyFilter(r.db.WithContext(ctx).Model(&models.QuoteRequestModel{}), filter)
	query = applyPage(quoteListOptions.applyOrder(query, filter), filter)

	var rows []models.QuoteRequestModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]submission.QuoteRequest, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts quote requests matching the filter
func (r *GormQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := quoteListOptions.applyFilter(r.db.WithContext(ctx).Model(&models.QuoteRequestModel{}), filter).
		Count(&count).Error
	return count, err
}

// UpdateStatus changes only the status of a quote request
func (r *GormQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status submission.QuoteStatus) error {
	result := r.db.WithContext(ctx).Model(&models.QuoteRequestModel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a quote request
func (r *GormQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.QuoteRequestModel{}, id)
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ submission.ContactRepository = (*GormContactRepository)(nil)
	_ submission.QuoteRepository   = (*GormQuoteRepository)(nil)
)
