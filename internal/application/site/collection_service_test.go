package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of site.OrderedRepository
type MockRepository[T site.Entity] struct {
	mock.Mock
}

func (m *MockRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		var zero T
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) Save(ctx context.Context, entity T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository[T]) UpdateOrders(ctx context.Context, assignments []shared.OrderAssignment) error {
	args := m.Called(ctx, assignments)
	return args.Error(0)
}

// MockServiceRepository adds slug lookup
type MockServiceRepository struct {
	MockRepository[*site.Service]
}

func (m *MockServiceRepository) FindBySlug(ctx context.Context, slug string) (*site.Service, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*site.Service), args.Error(1)
}

func newClientService(repo *MockRepository[*site.Client]) *CollectionService[*site.Client] {
	return NewCollectionService[*site.Client](repo, func() *site.Client { return &site.Client{} }, nil, nil)
}

func TestCollectionService_Create(t *testing.T) {
	repo := new(MockRepository[*site.Client])
	svc := newClientService(repo)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*site.Client")).Return(nil)

	in := &site.Client{Name: "Acme", LogoURL: "https://cdn.example.com/acme.png"}
	out, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.ID)
	assert.False(t, out.CreatedAt.IsZero())
	assert.Equal(t, "clients", svc.Collection())
}

func TestCollectionService_Create_ValidationFailsWithoutWrite(t *testing.T) {
	repo := new(MockRepository[*site.Client])
	svc := newClientService(repo)

	_, err := svc.Create(context.Background(), &site.Client{Name: "No logo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCollectionService_Update_KeepsIdentity(t *testing.T) {
	repo := new(MockRepository[*site.Client])
	svc := newClientService(repo)

	stored := &site.Client{BaseEntity: shared.NewBaseEntity(), Name: "Old", LogoURL: "https://cdn.example.com/a.png"}
	stored.CreatedAt = time.Now().Add(-48 * time.Hour)
	repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*site.Client")).Return(nil)

	out, err := svc.Update(context.Background(), stored.ID, &site.Client{
		BaseEntity: shared.BaseEntity{ID: uuid.New()},
		Name:       "New",
		LogoURL:    "https://cdn.example.com/b.png",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, out.ID)
	assert.Equal(t, stored.CreatedAt, out.CreatedAt)
	assert.Equal(t, "New", out.Name)
}

func TestCollectionService_Delete_NotFound(t *testing.T) {
	repo := new(MockRepository[*site.Client])
	svc := newClientService(repo)
	id := uuid.New()

	repo.On("Delete", mock.Anything, id).Return(shared.ErrNotFound)

	assert.True(t, errors.Is(svc.Delete(context.Background(), id), shared.ErrNotFound))
}

func TestOrderedCollectionService_CreateAppends(t *testing.T) {
	repo := new(MockRepository[*site.TeamMember])
	svc := NewOrderedCollectionService[*site.TeamMember](repo, func() *site.TeamMember { return &site.TeamMember{} }, nil, nil)

	repo.On("Count", mock.Anything, shared.Filter{}).Return(int64(3), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*site.TeamMember")).Return(nil)

	out, err := svc.Create(context.Background(), &site.TeamMember{Name: "Sam", ImageURL: "https://cdn.example.com/sam.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Order)
}

func TestOrderedCollectionService_UpdateKeepsOrder(t *testing.T) {
	repo := new(MockRepository[*site.PortfolioItem])
	svc := NewOrderedCollectionService[*site.PortfolioItem](repo, func() *site.PortfolioItem { return &site.PortfolioItem{} }, nil, nil)

	stored := &site.PortfolioItem{BaseEntity: shared.NewBaseEntity(), Title: "Shop", ImageURL: "https://cdn.example.com/shop.png"}
	stored.Order = 7
	repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Update(context.Background(), stored.ID, &site.PortfolioItem{Title: "Shop v2", ImageURL: "https://cdn.example.com/shop2.png"})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Order)
}

func TestOrderedCollectionService_Reorder(t *testing.T) {
	repo := new(MockRepository[*site.TeamMember])
	svc := NewOrderedCollectionService[*site.TeamMember](repo, func() *site.TeamMember { return &site.TeamMember{} }, nil, nil)
	a, b := uuid.New(), uuid.New()

	repo.On("UpdateOrders", mock.Anything, []shared.OrderAssignment{{ID: b, Order: 0}, {ID: a, Order: 1}}).Return(nil)
	repo.On("FindAll", mock.Anything, shared.Filter{}).Return([]*site.TeamMember{}, nil)

	_, err := svc.Reorder(context.Background(), ReorderRequest{IDs: []uuid.UUID{b, a}})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderedCollectionService_Reorder_RejectsRepeatedIDs(t *testing.T) {
	repo := new(MockRepository[*site.TeamMember])
	svc := NewOrderedCollectionService[*site.TeamMember](repo, func() *site.TeamMember { return &site.TeamMember{} }, nil, nil)
	a := uuid.New()

	_, err := svc.Reorder(context.Background(), ReorderRequest{IDs: []uuid.UUID{a, a}})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	repo.AssertNotCalled(t, "UpdateOrders", mock.Anything, mock.Anything)
}

func TestServiceCatalog_SlugFromTitle(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewServiceCatalog(repo, nil, nil)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*site.Service")).Return(nil)

	out, err := svc.Create(context.Background(), &site.Service{
		Title:         "Création de sites",
		IconURL:       "https://cdn.example.com/icon.png",
		StartingPrice: decimal.NewFromInt(900),
	})
	require.NoError(t, err)
	assert.Equal(t, "creation-de-sites", out.Slug)
	assert.Equal(t, "/services/creation-de-sites", out.PublicPath())
}

func TestServiceCatalog_GetBySlug(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := NewServiceCatalog(repo, nil, nil)

	repo.On("FindBySlug", mock.Anything, "seo").Return(nil, shared.ErrNotFound)

	_, err := svc.GetBySlug(context.Background(), "seo")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
