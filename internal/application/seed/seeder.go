package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pageapp "github.com/atedres/boldnet-sub000/internal/application/page"
	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	siteapp "github.com/atedres/boldnet-sub000/internal/application/site"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Report counts what a seeding run wrote
type Report struct {
	Sections int
	Pages    int
	Entities int
	Settings int
	Skipped  int
}

// Seeder writes a fixture through the application services, so every record
// passes the same validation as an editor write
type Seeder struct {
	sections *sectionapp.SectionService
	pages    map[page.Kind]*pageapp.PageService
	site     *siteapp.Services
	settings *siteapp.SettingsService
	logger   *zap.Logger
}

// NewSeeder creates a seeder over the application services
func NewSeeder(
	sections *sectionapp.SectionService,
	pages []*pageapp.PageService,
	siteServices *siteapp.Services,
	settings *siteapp.SettingsService,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	byKind := make(map[page.Kind]*pageapp.PageService, len(pages))
	for _, p := range pages {
		byKind[p.Kind()] = p
	}
	return &Seeder{
		sections: sections,
		pages:    byKind,
		site:     siteServices,
		settings: settings,
		logger:   logger,
	}
}

// Apply writes the fixture and stops at the first failure. Static homepage
// sections that already exist are skipped, so a fixture can be re-applied
// over a seeded homepage.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Report, error) {
	report := &Report{}

	for i, sf := range f.Sections {
		if err := s.seedHomepageSection(ctx, sf, report); err != nil {
			return report, fmt.Errorf("sections[%d] (%s): %w", i, sf.Type, err)
		}
	}

	pageSets := []struct {
		kind  page.Kind
		pages []PageFixture
	}{
		{page.KindLanding, f.LandingPages},
		{page.KindBlog, f.BlogPosts},
		{page.KindCoded, f.CodedPages},
	}
	for _, set := range pageSets {
		for i, pf := range set.pages {
			if err := s.seedPage(ctx, set.kind, pf); err != nil {
				return report, fmt.Errorf("%s[%d] (%s): %w", set.kind.Collection(), i, pf.Title, err)
			}
			report.Pages++
		}
	}

	if s.site != nil {
		steps := []struct {
			name string
			run  func() (int, error)
		}{
			{site.CollectionClients, func() (int, error) { return seedCollection[*site.Client](ctx, s.site.Clients, f.Clients) }},
			{site.CollectionTeamMembers, func() (int, error) { return seedCollection[*site.TeamMember](ctx, s.site.TeamMembers, f.TeamMembers) }},
			{site.CollectionServices, func() (int, error) { return seedCollection[*site.Service](ctx, s.site.Services, f.Services) }},
			{site.CollectionTestimonials, func() (int, error) {
				return seedCollection[*site.Testimonial](ctx, s.site.Testimonials, f.Testimonials)
			}},
			{site.CollectionFunnelSteps, func() (int, error) { return seedCollection[*site.FunnelStep](ctx, s.site.FunnelSteps, f.FunnelSteps) }},
			{site.CollectionPortfolioItems, func() (int, error) {
				return seedCollection[*site.PortfolioItem](ctx, s.site.PortfolioItems, f.PortfolioItems)
			}},
		}
		for _, step := range steps {
			n, err := step.run()
			report.Entities += n
			if err != nil {
				return report, fmt.Errorf("%s: %w", step.name, err)
			}
		}
	}

	for collection, doc := range f.Settings {
		if _, err := s.settings.Patch(ctx, collection, map[string]interface{}(doc)); err != nil {
			return report, fmt.Errorf("settings %s: %w", collection, err)
		}
		report.Settings++
	}

	s.logger.Info("Fixture applied",
		zap.Int("sections", report.Sections),
		zap.Int("pages", report.Pages),
		zap.Int("entities", report.Entities),
		zap.Int("settings", report.Settings),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func (s *Seeder) seedHomepageSection(ctx context.Context, sf SectionFixture, report *Report) error {
	added, err := s.sections.Add(ctx, sectionapp.AddSectionRequest{Type: sf.Type})
	if errors.Is(err, section.ErrDuplicateStaticSection) {
		s.logger.Warn("Static section already present, skipped", zap.String("type", sf.Type))
		report.Skipped++
		return nil
	}
	if err != nil {
		return err
	}
	if len(sf.Content) > 0 {
		if _, err := s.sections.UpdateContent(ctx, added.ID, sectionapp.UpdateContentRequest{Content: sf.Content}); err != nil {
			return err
		}
	}
	if sf.Visible != nil && !*sf.Visible {
		if _, err := s.sections.ToggleVisibility(ctx, added.ID); err != nil {
			return err
		}
	}
	report.Sections++
	return nil
}

func (s *Seeder) seedPage(ctx context.Context, kind page.Kind, pf PageFixture) error {
	svc, ok := s.pages[kind]
	if !ok {
		return fmt.Errorf("no service for %s", kind)
	}
	created, err := svc.Create(ctx, pageapp.CreatePageRequest{
		Title:       pf.Title,
		Slug:        pf.Slug,
		Description: pf.Description,
		Excerpt:     pf.Excerpt,
		CoverImage:  pf.CoverImage,
		Author:      pf.Author,
		Visible:     pf.Visible,
	})
	if err != nil {
		return err
	}
	for _, sf := range pf.Sections {
		if err := seedPageSection(ctx, svc, created.ID, sf); err != nil {
			return fmt.Errorf("section %s: %w", sf.Type, err)
		}
	}
	return nil
}

func seedPageSection(ctx context.Context, svc *pageapp.PageService, pageID uuid.UUID, sf SectionFixture) error {
	added, err := svc.AddSection(ctx, pageID, sectionapp.AddSectionRequest{Type: sf.Type})
	if err != nil {
		return err
	}
	if len(sf.Content) > 0 {
		if _, err := svc.UpdateSectionContent(ctx, pageID, added.ID, sectionapp.UpdateContentRequest{Content: sf.Content}); err != nil {
			return err
		}
	}
	if sf.Visible != nil && !*sf.Visible {
		if _, err := svc.ToggleSectionVisibility(ctx, pageID, added.ID); err != nil {
			return err
		}
	}
	return nil
}

// creator is the part of a collection service the seeder needs
type creator[T site.Entity] interface {
	New() T
	Create(ctx context.Context, entity T) (T, error)
}

func seedCollection[T site.Entity](ctx context.Context, svc creator[T], docs []Document) (int, error) {
	for i, doc := range docs {
		entity, err := decode(svc.New(), doc)
		if err != nil {
			return i, fmt.Errorf("[%d]: %w", i, err)
		}
		if _, err := svc.Create(ctx, entity); err != nil {
			return i, fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return len(docs), nil
}

// decode maps a YAML document onto an entity through its JSON field names
func decode[T any](entity T, doc Document) (T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return entity, err
	}
	if err := json.Unmarshal(raw, entity); err != nil {
		return entity, err
	}
	return entity, nil
}
