package section

import (
	"context"
	"fmt"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionSections is the collection name announced for homepage sections
const CollectionSections = "sections"

// SectionService edits the homepage sections
type SectionService struct {
	repo      section.Repository
	announcer *event.Announcer
	logger    *zap.Logger
}

// NewSectionService creates a new SectionService
func NewSectionService(repo section.Repository, announcer *event.Announcer, logger *zap.Logger) *SectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if announcer == nil {
		announcer = event.NewAnnouncer(nil, nil, logger)
	}
	return &SectionService{
		repo:      repo,
		announcer: announcer,
		logger:    logger,
	}
}

// Templates returns the catalog offered by the homepage editor
func (s *SectionService) Templates() []TemplateResponse {
	return ToTemplateResponses(section.SurfaceHomepage)
}

// List returns every homepage section, hidden ones included, in display order
func (s *SectionService) List(ctx context.Context) ([]SectionResponse, error) {
	sections, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	section.SortForDisplay(sections)
	return ToSectionResponses(sections), nil
}

// Published returns the sections the public homepage renders
func (s *SectionService) Published(ctx context.Context) ([]section.Section, error) {
	sections, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return section.Renderable(sections), nil
}

// Add creates a section from the catalog at the end of the homepage.
// A static template that already has an instance is rejected without a write.
func (s *SectionService) Add(ctx context.Context, req AddSectionRequest) (*SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "section", "add", telemetry.SpanAttrCollection, CollectionSections)
	defer span.End()

	if _, ok := section.Lookup(req.Type); ok && !section.Allowed(section.SurfaceHomepage, req.Type) {
		return nil, section.ErrTemplateNotAllowed.WithMessage(
			fmt.Sprintf("%s sections are not available on the homepage", req.Type))
	}

	siblings, err := s.repo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	created, err := section.PlanAdd(siblings, req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, created); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Section added",
		zap.String("section_id", created.ID.String()),
		zap.String("type", created.Type),
		zap.Int("order", created.Order))
	s.announcer.Announce(ctx, CollectionSections, created.ID, shared.ActionCreated)

	resp := ToSectionResponse(created)
	return &resp, nil
}

// Reorder gives the section at position i order i. Every order is written in
// one transaction; the returned list reflects the committed state.
func (s *SectionService) Reorder(ctx context.Context, req ReorderSectionsRequest) ([]SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "section", "reorder", telemetry.SpanAttrCount, len(req.IDs))
	defer span.End()

	siblings, err := s.repo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	assignments, err := section.PlanReorder(siblings, req.IDs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrders(ctx, assignments); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	section.ApplyOrders(siblings, assignments)
	section.SortForDisplay(siblings)

	s.logger.Info("Sections reordered", zap.Int("count", len(assignments)))
	s.announcer.Announce(ctx, CollectionSections, uuid.Nil, shared.ActionReordered)
	return ToSectionResponses(siblings), nil
}

// ToggleVisibility flips the visible flag of one section
func (s *SectionService) ToggleVisibility(ctx context.Context, id uuid.UUID) (*SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "section", "toggle_visibility", telemetry.SpanAttrSectionID, id.String())
	defer span.End()

	sec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sec.ToggleVisibility()
	if err := s.repo.Save(ctx, sec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.Announce(ctx, CollectionSections, sec.ID, shared.ActionToggled)
	resp := ToSectionResponse(sec)
	return &resp, nil
}

// UpdateContent validates the payload against the section type and stores it verbatim
func (s *SectionService) UpdateContent(ctx context.Context, id uuid.UUID, req UpdateContentRequest) (*SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "section", "update_content", telemetry.SpanAttrSectionID, id.String())
	defer span.End()

	sec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sec.ReplaceContent(req.Content); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.Announce(ctx, CollectionSections, sec.ID, shared.ActionUpdated)
	resp := ToSectionResponse(sec)
	return &resp, nil
}

// Delete removes a section; hero sections are rejected. Siblings keep their order.
func (s *SectionService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "section", "delete", telemetry.SpanAttrSectionID, id.String())
	defer span.End()

	sec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sec.CanDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Section deleted", zap.String("section_id", id.String()), zap.String("type", sec.Type))
	s.announcer.Announce(ctx, CollectionSections, id, shared.ActionDeleted)
	return nil
}
