package page

import (
	"context"
	"errors"
	"strings"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageService manages the pages of one kind and their embedded sections.
// Every write replaces the page row, sections included, in a single update.
type PageService struct {
	repo      page.Repository
	kind      page.Kind
	announcer *event.Announcer
	logger    *zap.Logger
}

// NewPageService creates a service for the repository's page kind
func NewPageService(repo page.Repository, announcer *event.Announcer, logger *zap.Logger) *PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if announcer == nil {
		announcer = event.NewAnnouncer(nil, nil, logger)
	}
	return &PageService{
		repo:      repo,
		kind:      repo.Kind(),
		announcer: announcer,
		logger:    logger.With(zap.String("collection", repo.Kind().Collection())),
	}
}

// Kind returns the page kind served
func (s *PageService) Kind() page.Kind {
	return s.kind
}

// Templates returns the section catalog offered by this kind's editor
func (s *PageService) Templates() []sectionapp.TemplateResponse {
	if !s.kind.HasSections() {
		return []sectionapp.TemplateResponse{}
	}
	return sectionapp.ToTemplateResponses(s.kind.Surface())
}

// List returns a page of pages matching the query
func (s *PageService) List(ctx context.Context, q ListPagesQuery) (*shared.Paginated[PageListItem], error) {
	filter := shared.NewFilter(q.Page, q.PageSize, strings.TrimSpace(q.Search))
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	if q.Visible != nil {
		filter.Filters["visible"] = *q.Visible
	}

	pages, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PageListItem, len(pages))
	for i := range pages {
		items[i] = ToPageListItem(&pages[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetByID returns a page by id, hidden or not
func (s *PageService) GetByID(ctx context.Context, id uuid.UUID) (*PageResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPageResponse(p)
	return &resp, nil
}

// GetPublished returns the visible page served at the slug. Slugs are not
// unique: the earliest created page wins and duplicates are logged.
func (s *PageService) GetPublished(ctx context.Context, slug string) (*page.Page, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "get_published", telemetry.SpanAttrSlug, slug)
	defer span.End()

	p, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.warnOnDuplicateSlug(ctx, slug)
	return p, nil
}

// Create creates a visible page, unless Visible is explicitly false
func (s *PageService) Create(ctx context.Context, req CreatePageRequest) (*PageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "create", telemetry.SpanAttrCollection, s.kind.Collection())
	defer span.End()

	p, err := page.NewPage(s.kind, req.Title, page.NormalizeSlug(req.Slug))
	if err != nil {
		return nil, err
	}
	p.SetDetails(page.Details{
		Description: req.Description,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		Author:      req.Author,
		PublishedAt: req.PublishedAt,
	})
	if req.Visible != nil && !*req.Visible {
		p.ToggleVisibility()
	}

	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.warnOnDuplicateSlug(ctx, p.Slug)

	s.logger.Info("Page created", zap.String("page_id", p.ID.String()), zap.String("slug", p.Slug))
	s.announcer.Announce(ctx, s.kind.Collection(), p.ID, shared.ActionCreated)

	resp := ToPageResponse(p)
	return &resp, nil
}

// Update applies a partial update; sections are edited through the section operations
func (s *PageService) Update(ctx context.Context, id uuid.UUID, req UpdatePageRequest) (*PageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "update", telemetry.SpanAttrEntityID, id.String())
	defer span.End()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slugChanged := false
	if req.Title != nil || req.Slug != nil {
		title, slug := p.Title, p.Slug
		if req.Title != nil {
			title = *req.Title
		}
		if req.Slug != nil {
			slug = page.NormalizeSlug(*req.Slug)
		}
		slugChanged = slug != p.Slug
		if err := p.Rename(title, slug); err != nil {
			return nil, err
		}
	}

	details := p.Details
	if req.Description != nil {
		details.Description = *req.Description
	}
	if req.Excerpt != nil {
		details.Excerpt = *req.Excerpt
	}
	if req.CoverImage != nil {
		details.CoverImage = *req.CoverImage
	}
	if req.Author != nil {
		details.Author = *req.Author
	}
	if req.PublishedAt != nil {
		details.PublishedAt = req.PublishedAt
	}
	p.SetDetails(details)

	if req.Visible != nil && *req.Visible != p.Visible {
		p.ToggleVisibility()
	}

	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if slugChanged {
		s.warnOnDuplicateSlug(ctx, p.Slug)
	}

	s.announcer.Announce(ctx, s.kind.Collection(), p.ID, shared.ActionUpdated)
	resp := ToPageResponse(p)
	return &resp, nil
}

// Delete removes a page with its sections
func (s *PageService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "delete", telemetry.SpanAttrEntityID, id.String())
	defer span.End()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Page deleted", zap.String("page_id", id.String()))
	s.announcer.Announce(ctx, s.kind.Collection(), id, shared.ActionDeleted)
	return nil
}

func (s *PageService) warnOnDuplicateSlug(ctx context.Context, slug string) {
	count, err := s.repo.CountBySlug(ctx, slug)
	if err != nil {
		s.logger.Warn("Failed to count pages by slug", zap.String("slug", slug), zap.Error(err))
		return
	}
	if count > 1 {
		s.logger.Warn("Duplicate slug; the earliest created page is served",
			zap.String("slug", slug),
			zap.Int64("count", count))
	}
}

// load fetches a page that embeds sections
func (s *PageService) load(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	if !s.kind.HasSections() {
		return nil, page.ErrNoSections
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage("Page not found")
		}
		return nil, err
	}
	return p, nil
}
