package page

import (
	"context"
	"errors"
	"testing"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockPageRepository is a mock implementation of page.Repository
type MockPageRepository struct {
	mock.Mock
	kind page.Kind
}

func (m *MockPageRepository) Kind() page.Kind { return m.kind }

func (m *MockPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page), args.Error(1)
}

func (m *MockPageRepository) FindPublishedBySlug(ctx context.Context, slug string) (*page.Page, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page), args.Error(1)
}

func (m *MockPageRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]page.Page, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]page.Page), args.Error(1)
}

func (m *MockPageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPageRepository) Save(ctx context.Context, p *page.Page) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newLandingPage(t *testing.T) *page.Page {
	t.Helper()
	p, err := page.NewPage(page.KindLanding, "Spring offer", "")
	require.NoError(t, err)
	return p
}

func TestPageService_Create_NormalizesSlug(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindLanding}
	svc := NewPageService(repo, nil, zap.NewNop())

	repo.On("Save", mock.Anything, mock.AnythingOfType("*page.Page")).Return(nil)
	repo.On("CountBySlug", mock.Anything, "offre-ete").Return(int64(1), nil)

	resp, err := svc.Create(context.Background(), CreatePageRequest{Title: "Offre", Slug: "Offre Été"})
	require.NoError(t, err)
	assert.Equal(t, "offre-ete", resp.Slug)
	assert.Equal(t, "/lp/offre-ete", resp.Path)
	assert.True(t, resp.Visible)
	assert.NotNil(t, resp.Sections)
}

func TestPageService_Create_LogsDuplicateSlug(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &MockPageRepository{kind: page.KindBlog}
	svc := NewPageService(repo, nil, zap.New(core))

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("CountBySlug", mock.Anything, "hello-world").Return(int64(2), nil)

	_, err := svc.Create(context.Background(), CreatePageRequest{Title: "Hello world"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Duplicate slug; the earliest created page is served").Len())
}

func TestPageService_GetPublished(t *testing.T) {
	t.Run("visible page", func(t *testing.T) {
		repo := &MockPageRepository{kind: page.KindLanding}
		svc := NewPageService(repo, nil, nil)
		p := newLandingPage(t)

		repo.On("FindPublishedBySlug", mock.Anything, p.Slug).Return(p, nil)
		repo.On("CountBySlug", mock.Anything, p.Slug).Return(int64(1), nil)

		got, err := svc.GetPublished(context.Background(), p.Slug)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("hidden page is not found", func(t *testing.T) {
		repo := &MockPageRepository{kind: page.KindLanding}
		svc := NewPageService(repo, nil, nil)
		p := newLandingPage(t)

		repo.On("FindPublishedBySlug", mock.Anything, p.Slug).Return(nil, shared.ErrNotFound)

		_, err := svc.GetPublished(context.Background(), p.Slug)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestPageService_Update(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindBlog}
	svc := NewPageService(repo, nil, nil)
	p, err := page.NewPage(page.KindBlog, "First post", "")
	require.NoError(t, err)

	title := "Second post"
	author := "Nadia"
	hidden := false
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	resp, err := svc.Update(context.Background(), p.ID, UpdatePageRequest{Title: &title, Author: &author, Visible: &hidden})
	require.NoError(t, err)
	assert.Equal(t, "Second post", resp.Title)
	assert.Equal(t, "first-post", resp.Slug)
	assert.Equal(t, "Nadia", resp.Author)
	assert.False(t, resp.Visible)
	repo.AssertNotCalled(t, "CountBySlug", mock.Anything, mock.Anything)
}

func TestPageService_Delete_NotFound(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindCoded}
	svc := NewPageService(repo, nil, nil)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPageService_List(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindLanding}
	svc := NewPageService(repo, nil, nil)
	p := newLandingPage(t)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "spring" && f.Page == 2 && f.PageSize == 10
	})).Return([]page.Page{*p}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(11), nil)

	result, err := svc.List(context.Background(), ListPagesQuery{Search: " spring ", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Items, 1)
	assert.Equal(t, p.Slug, result.Items[0].Slug)
}

func TestPageService_SectionOperations(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindLanding}
	pub := &recordingPublisher{}
	svc := NewPageService(repo, event.NewAnnouncer(pub, nil, nil), nil)
	ctx := context.Background()
	p := newLandingPage(t)

	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	cta, err := svc.AddSection(ctx, p.ID, sectionapp.AddSectionRequest{Type: section.TypeCTA})
	require.NoError(t, err)
	assert.Equal(t, 1, cta.Order)

	text, err := svc.AddSection(ctx, p.ID, sectionapp.AddSectionRequest{Type: section.TypeTextImage})
	require.NoError(t, err)
	assert.Equal(t, 2, text.Order)

	reordered, err := svc.ReorderSections(ctx, p.ID, sectionapp.ReorderSectionsRequest{IDs: []uuid.UUID{text.ID, cta.ID}})
	require.NoError(t, err)
	orders := map[uuid.UUID]int{}
	for _, s := range reordered.Sections {
		orders[s.ID] = s.Order
	}
	assert.Equal(t, 0, orders[text.ID])
	assert.Equal(t, 1, orders[cta.ID])

	toggled, err := svc.ToggleSectionVisibility(ctx, p.ID, cta.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Visible)

	payload := map[string]interface{}{"title": "Join", "buttonText": "Go", "buttonLink": "/go"}
	updated, err := svc.UpdateSectionContent(ctx, p.ID, cta.ID, sectionapp.UpdateContentRequest{Content: payload})
	require.NoError(t, err)
	assert.Equal(t, payload, updated.Content)

	require.NoError(t, svc.DeleteSection(ctx, p.ID, text.ID))
	assert.Len(t, p.Sections, 1)

	assert.Equal(t, []string{
		shared.ActionCreated, shared.ActionCreated, shared.ActionReordered,
		shared.ActionToggled, shared.ActionUpdated, shared.ActionDeleted,
	}, pub.actions())
}

func TestPageService_AddSection_RejectsTemplateOutsideSurface(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindBlog}
	svc := NewPageService(repo, nil, nil)
	p, err := page.NewPage(page.KindBlog, "Post", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = svc.AddSection(context.Background(), p.ID, sectionapp.AddSectionRequest{Type: section.TypeTeam})
	assert.True(t, errors.Is(err, section.ErrTemplateNotAllowed))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPageService_AddSection_SaveFailure(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindLanding}
	pub := &recordingPublisher{}
	svc := NewPageService(repo, event.NewAnnouncer(pub, nil, nil), nil)
	p := newLandingPage(t)

	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(errors.New("connection reset"))

	_, err := svc.AddSection(context.Background(), p.ID, sectionapp.AddSectionRequest{Type: section.TypeCTA})
	require.Error(t, err)
	assert.Empty(t, pub.actions())
}

func TestPageService_CodedPagesHaveNoSections(t *testing.T) {
	repo := &MockPageRepository{kind: page.KindCoded}
	svc := NewPageService(repo, nil, nil)

	_, err := svc.AddSection(context.Background(), uuid.New(), sectionapp.AddSectionRequest{Type: section.TypeCTA})
	assert.True(t, errors.Is(err, page.ErrNoSections))
	assert.Empty(t, svc.Templates())
}

type recordingPublisher struct {
	changes []shared.ContentChanged
}

func (p *recordingPublisher) Publish(_ context.Context, c shared.ContentChanged) error {
	p.changes = append(p.changes, c)
	return nil
}

func (p *recordingPublisher) actions() []string {
	out := make([]string, len(p.changes))
	for i, c := range p.changes {
		out[i] = c.Action
	}
	return out
}
