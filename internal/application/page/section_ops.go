package page

import (
	"context"

	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddSection appends a catalog section to a page. The whole page row is
// written once; a duplicate static section is rejected before the write.
func (s *PageService) AddSection(ctx context.Context, pageID uuid.UUID, req sectionapp.AddSectionRequest) (*sectionapp.SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "add_section", telemetry.SpanAttrEntityID, pageID.String())
	defer span.End()

	p, err := s.load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	created, err := p.AddSection(req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Page section added",
		zap.String("page_id", p.ID.String()),
		zap.String("section_id", created.ID.String()),
		zap.String("type", created.Type))
	s.announcer.AnnounceChild(ctx, s.kind.Collection(), p.ID, created.ID, shared.ActionCreated)

	resp := sectionapp.ToSectionResponse(created)
	return &resp, nil
}

// ReorderSections gives the embedded section at position i order i
func (s *PageService) ReorderSections(ctx context.Context, pageID uuid.UUID, req sectionapp.ReorderSectionsRequest) (*PageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "reorder_sections",
		telemetry.SpanAttrEntityID, pageID.String(), telemetry.SpanAttrCount, len(req.IDs))
	defer span.End()

	p, err := s.load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := p.ReorderSections(req.IDs); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.AnnounceChild(ctx, s.kind.Collection(), p.ID, uuid.Nil, shared.ActionReordered)
	resp := ToPageResponse(p)
	return &resp, nil
}

// ToggleSectionVisibility flips the visible flag of one embedded section
func (s *PageService) ToggleSectionVisibility(ctx context.Context, pageID, sectionID uuid.UUID) (*sectionapp.SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "toggle_section_visibility",
		telemetry.SpanAttrEntityID, pageID.String(), telemetry.SpanAttrSectionID, sectionID.String())
	defer span.End()

	p, err := s.load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	sec, err := p.ToggleSectionVisibility(sectionID)
	if err != nil {
		return nil, err
	}
	resp := sectionapp.ToSectionResponse(sec)
	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.AnnounceChild(ctx, s.kind.Collection(), p.ID, sectionID, shared.ActionToggled)
	return &resp, nil
}

// UpdateSectionContent validates and stores the content of one embedded section
func (s *PageService) UpdateSectionContent(ctx context.Context, pageID, sectionID uuid.UUID, req sectionapp.UpdateContentRequest) (*sectionapp.SectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "update_section_content",
		telemetry.SpanAttrEntityID, pageID.String(), telemetry.SpanAttrSectionID, sectionID.String())
	defer span.End()

	p, err := s.load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	sec, err := p.UpdateSectionContent(sectionID, req.Content)
	if err != nil {
		return nil, err
	}
	resp := sectionapp.ToSectionResponse(sec)
	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.AnnounceChild(ctx, s.kind.Collection(), p.ID, sectionID, shared.ActionUpdated)
	return &resp, nil
}

// DeleteSection removes one embedded section; hero sections are rejected
func (s *PageService) DeleteSection(ctx context.Context, pageID, sectionID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "page", "delete_section",
		telemetry.SpanAttrEntityID, pageID.String(), telemetry.SpanAttrSectionID, sectionID.String())
	defer span.End()

	p, err := s.load(ctx, pageID)
	if err != nil {
		return err
	}
	if err := p.DeleteSection(sectionID); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.announcer.AnnounceChild(ctx, s.kind.Collection(), p.ID, sectionID, shared.ActionDeleted)
	return nil
}
