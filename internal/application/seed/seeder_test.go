package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	pageapp "github.com/atedres/boldnet-sub000/internal/application/page"
	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/application/seed"
	siteapp "github.com/atedres/boldnet-sub000/internal/application/site"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixtureYAML = `
sections:
  - type: hero
    content:
      title: Boldnet
      subtitle: Digital agency
      ctaLabel: Get a quote
      ctaHref: /#contact
  - type: services-overview
  - type: cta
    visible: false
landingPages:
  - title: Summer Offer
    sections:
      - type: text-image
        content:
          title: Offer
          body: "**Half price** websites"
blogPosts:
  - title: First post
    slug: first-post
    visible: false
    excerpt: Hello
teamMembers:
  - name: Ana
    imageUrl: https://cdn.example.com/ana.png
  - name: Bruno
    imageUrl: https://cdn.example.com/bruno.png
services:
  - title: Web Design
    iconUrl: https://cdn.example.com/web.png
    startingPrice: 499.90
    features: [Responsive, SEO]
settings:
  theme_settings:
    primaryColor: "#ff6600"
`

type harness struct {
	seeder   *seed.Seeder
	sections *sectionapp.SectionService
	pages    map[page.Kind]*pageapp.PageService
	site     *siteapp.Services
	settings *siteapp.SettingsService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := persistence.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := persistence.NewRepositories(db.DB)
	logger := zap.NewNop()
	announcer := event.NewAnnouncer(nil, nil, logger)

	h := &harness{
		sections: sectionapp.NewSectionService(repos.Sections, announcer, logger),
		pages:    map[page.Kind]*pageapp.PageService{},
		site: siteapp.NewServices(siteapp.Repositories{
			Clients:        repos.Clients,
			TeamMembers:    repos.TeamMembers,
			Services:       repos.Services,
			Testimonials:   repos.Testimonials,
			FunnelSteps:    repos.FunnelSteps,
			PortfolioItems: repos.PortfolioItems,
		}, announcer, logger),
		settings: siteapp.NewSettingsService(repos.Singletons, announcer, logger),
	}
	var pageServices []*pageapp.PageService
	for _, kind := range persistence.PageKinds {
		svc := pageapp.NewPageService(repos.Pages[kind], announcer, logger)
		h.pages[kind] = svc
		pageServices = append(pageServices, svc)
	}
	h.seeder = seed.NewSeeder(h.sections, pageServices, h.site, h.settings, logger)
	return h
}

func TestSeeder_Apply(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	f, err := seed.ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	report, err := h.seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Sections)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 3, report.Entities)
	assert.Equal(t, 1, report.Settings)
	assert.Zero(t, report.Skipped)

	sections, err := h.sections.List(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, section.TypeHero, sections[0].Type)
	assert.Equal(t, "Boldnet", sections[0].Content["title"])
	assert.False(t, sections[2].Visible)

	published, err := h.sections.Published(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 2)

	lp, err := h.pages[page.KindLanding].GetPublished(ctx, "summer-offer")
	require.NoError(t, err)
	require.Len(t, lp.Sections, 1)
	assert.Equal(t, section.TypeTextImage, lp.Sections[0].Type)

	_, err = h.pages[page.KindBlog].GetPublished(ctx, "first-post")
	assert.Error(t, err, "hidden posts are not published")

	team, err := h.site.TeamMembers.All(ctx)
	require.NoError(t, err)
	require.Len(t, team, 2)
	orders := map[string]int{}
	for _, m := range team {
		orders[m.Name] = m.Order
	}
	assert.Equal(t, map[string]int{"Ana": 1, "Bruno": 2}, orders)

	svc, err := h.site.Services.GetBySlug(ctx, "web-design")
	require.NoError(t, err)
	assert.Equal(t, "499.9", svc.StartingPrice.String())
	assert.Equal(t, []string{"Responsive", "SEO"}, svc.Features)

	var theme site.ThemeSettings
	require.NoError(t, h.settings.Decode(ctx, site.SingletonTheme, &theme))
	assert.Equal(t, "#ff6600", theme.PrimaryColor)
}

func TestSeeder_ApplyTwiceSkipsStaticSections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	f, err := seed.ParseFixture(strings.NewReader(`
sections:
  - type: hero
  - type: contact-form
  - type: cta
`))
	require.NoError(t, err)

	_, err = h.seeder.Apply(ctx, f)
	require.NoError(t, err)

	report, err := h.seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Sections)

	sections, err := h.sections.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 4)
}

func TestSeeder_ApplyStopsOnInvalidContent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	f, err := seed.ParseFixture(strings.NewReader(`
sections:
  - type: cta
    content:
      title: Ready
      colour: red
`))
	require.NoError(t, err)

	_, err = h.seeder.Apply(ctx, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, section.ErrInvalidContent)
	assert.Contains(t, err.Error(), "sections[0] (cta)")
}

func TestParseFixture(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		f, err := seed.ParseFixture(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Sections)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := seed.ParseFixture(strings.NewReader("widgets:\n  - a\n"))
		assert.Error(t, err)
	})
}
