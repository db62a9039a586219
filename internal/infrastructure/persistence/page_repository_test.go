package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPage(t *testing.T, kind page.Kind, title, slug string, createdAt time.Time) *page.Page {
	t.Helper()
	p, err := page.NewPage(kind, title, slug)
	require.NoError(t, err)
	p.CreatedAt = createdAt
	p.UpdatedAt = createdAt
	return p
}

func TestGormPageRepository_SaveRoundTripsSections(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindLanding)
	ctx := context.Background()

	p := newTestPage(t, page.KindLanding, "Spring Offer", "", time.Now())
	cta, err := p.AddSection(section.TypeCTA)
	require.NoError(t, err)
	_, err = p.AddSection(section.TypeFeatureGrid)
	require.NoError(t, err)
	_, err = p.ToggleSectionVisibility(cta.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, page.KindLanding, found.Kind)
	assert.Equal(t, "spring-offer", found.Slug)
	require.Len(t, found.Sections, 2)
	assert.Equal(t, cta.ID, found.Sections[0].ID)
	assert.False(t, found.Sections[0].IsVisible())
	assert.True(t, found.Sections[1].IsVisible())
	assert.Equal(t, "Contact us", found.Sections[0].Content["buttonText"])
}

func TestGormPageRepository_SaveUpdatesExistingRow(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindBlog)
	ctx := context.Background()

	p := newTestPage(t, page.KindBlog, "First draft", "draft", time.Now())
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, p.Rename("Final title", "final"))
	p.ToggleVisibility()
	require.NoError(t, repo.Save(ctx, p))

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", found.Slug)
	assert.False(t, found.Visible)
}

func TestGormPageRepository_FindPublishedBySlug_ReturnsEarliest(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindLanding)
	ctx := context.Background()

	now := time.Now()
	newer := newTestPage(t, page.KindLanding, "Newer", "offer", now)
	older := newTestPage(t, page.KindLanding, "Older", "offer", now.Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	found, err := repo.FindPublishedBySlug(ctx, "offer")
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID)

	count, err := repo.CountBySlug(ctx, "offer")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.FindPublishedBySlug(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPageRepository_FindPublishedBySlug_SkipsHiddenDuplicate(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindLanding)
	ctx := context.Background()

	now := time.Now()
	hidden := newTestPage(t, page.KindLanding, "Old offer", "offer", now.Add(-time.Hour))
	hidden.ToggleVisibility()
	live := newTestPage(t, page.KindLanding, "New offer", "offer", now)
	require.NoError(t, repo.Save(ctx, hidden))
	require.NoError(t, repo.Save(ctx, live))

	found, err := repo.FindPublishedBySlug(ctx, "offer")
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)
}

func TestGormPageRepository_SaveNewHiddenPage(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindLanding)
	ctx := context.Background()

	p := newTestPage(t, page.KindLanding, "Draft", "draft", time.Now())
	p.ToggleVisibility()
	require.False(t, p.Visible)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found.Visible)

	_, err = repo.FindPublishedBySlug(ctx, "draft")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPageRepository_KindsUseSeparateTables(t *testing.T) {
	db := newTestDB(t)
	landing := NewGormPageRepository(db, page.KindLanding)
	coded := NewGormPageRepository(db, page.KindCoded)
	ctx := context.Background()

	p := newTestPage(t, page.KindCoded, "Pricing", "pricing", time.Now())
	require.NoError(t, coded.Save(ctx, p))

	_, err := landing.FindPublishedBySlug(ctx, "pricing")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	found, err := coded.FindPublishedBySlug(ctx, "pricing")
	require.NoError(t, err)
	assert.Nil(t, found.Sections)

	assert.ErrorIs(t, landing.Save(ctx, p), page.ErrInvalidKind)
}

func TestGormPageRepository_FindAll_FilterAndPaging(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindBlog)
	ctx := context.Background()

	now := time.Now()
	titles := []string{"Go tips", "Design notes", "Go generics"}
	for i, title := range titles {
		require.NoError(t, repo.Save(ctx, newTestPage(t, page.KindBlog, title, "", now.Add(time.Duration(i)*time.Minute))))
	}

	pages, err := repo.FindAll(ctx, shared.Filter{Search: "go", OrderBy: "title", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Go generics", pages[0].Title)
	assert.Equal(t, "Go tips", pages[1].Title)

	pages, err = repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Go tips", pages[0].Title)
}

func TestGormPageRepository_Delete(t *testing.T) {
	repo := NewGormPageRepository(newTestDB(t), page.KindLanding)
	ctx := context.Background()

	p := newTestPage(t, page.KindLanding, "Gone", "", time.Now())
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
