package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSections(t *testing.T, repo *GormSectionRepository, types ...string) []section.Section {
	t.Helper()
	ctx := context.Background()
	var siblings []section.Section
	base := time.Now().Add(-time.Hour)
	for i, typ := range types {
		s, err := section.PlanAdd(siblings, typ)
		require.NoError(t, err)
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		s.UpdatedAt = s.CreatedAt
		require.NoError(t, repo.Save(ctx, s))
		siblings = append(siblings, *s)
	}
	return siblings
}

func TestGormSectionRepository_SaveAndFind(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	saved := seedSections(t, repo, section.TypeHero, section.TypeCTA)

	found, err := repo.FindByID(ctx, saved[1].ID)
	require.NoError(t, err)
	assert.Equal(t, section.TypeCTA, found.Type)
	assert.Equal(t, 2, found.Order)
	assert.True(t, found.IsVisible())
	assert.Equal(t, saved[1].Content["buttonText"], found.Content["buttonText"])

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSectionRepository_FindAll_OrdersByOrderThenCreation(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	saved := seedSections(t, repo, section.TypeHero, section.TypeCTA, section.TypeTextImage)
	// give the last two the same order; creation time breaks the tie
	saved[2].Order = 2
	require.NoError(t, repo.Save(ctx, &saved[2]))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, saved[0].ID, all[0].ID)
	assert.Equal(t, saved[1].ID, all[1].ID)
	assert.Equal(t, saved[2].ID, all[2].ID)
}

func TestGormSectionRepository_SavePreservesMissingVisibleFlag(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	s := section.Section{
		ID:        uuid.New(),
		Type:      section.TypeCTA,
		Order:     1,
		Content:   map[string]interface{}{"title": "Legacy"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(ctx, &s))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Visible)
	assert.True(t, found.IsVisible())
}

func TestGormSectionRepository_UpdateOrders_Success(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	saved := seedSections(t, repo, section.TypeHero, section.TypeCTA, section.TypeTextImage)

	err := repo.UpdateOrders(ctx, []shared.OrderAssignment{
		{ID: saved[2].ID, Order: 0},
		{ID: saved[1].ID, Order: 1},
	})
	require.NoError(t, err)

	a, err := repo.FindByID(ctx, saved[2].ID)
	require.NoError(t, err)
	b, err := repo.FindByID(ctx, saved[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
}

func TestGormSectionRepository_UpdateOrders_MissingRowChangesNothing(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	saved := seedSections(t, repo, section.TypeHero, section.TypeCTA, section.TypeTextImage)

	err := repo.UpdateOrders(ctx, []shared.OrderAssignment{
		{ID: saved[2].ID, Order: 0},
		{ID: uuid.New(), Order: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	unchanged, err := repo.FindByID(ctx, saved[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unchanged.Order)
}

func TestGormSectionRepository_UpdateOrders_FailureMidBatchRollsBack(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSectionRepository(gormDB)

	first, second := uuid.New(), uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sections" SET "sort_order"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(0, sqlmock.AnyArg(), first).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "sections" SET "sort_order"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(1, sqlmock.AnyArg(), second).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.UpdateOrders(context.Background(), []shared.OrderAssignment{
		{ID: first, Order: 0},
		{ID: second, Order: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSectionRepository_UpdateOrders_EmptyIsNoop(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	err := NewGormSectionRepository(gormDB).UpdateOrders(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSectionRepository_Delete(t *testing.T) {
	repo := NewGormSectionRepository(newTestDB(t))
	ctx := context.Background()

	saved := seedSections(t, repo, section.TypeHero, section.TypeCTA)

	require.NoError(t, repo.Delete(ctx, saved[1].ID))
	assert.ErrorIs(t, repo.Delete(ctx, saved[1].ID), shared.ErrNotFound)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
