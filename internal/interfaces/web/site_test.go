package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSections struct {
	sections []section.Section
	err      error
}

func (f fakeSections) Published(context.Context) ([]section.Section, error) {
	return f.sections, f.err
}

type fakePages map[string]*page.Page

func (f fakePages) GetPublished(_ context.Context, slug string) (*page.Page, error) {
	if p, ok := f[slug]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

type fakeList[T any] []T

func (f fakeList[T]) All(context.Context) ([]T, error) { return f, nil }

type fakeServices []*site.Service

func (f fakeServices) All(context.Context) ([]*site.Service, error) { return f, nil }

func (f fakeServices) GetBySlug(_ context.Context, slug string) (*site.Service, error) {
	for _, s := range f {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeSettings map[string]map[string]interface{}

func (f fakeSettings) Decode(_ context.Context, collection string, out interface{}) error {
	return site.Decode(f[collection], out)
}

func visible(v bool) *bool { return &v }

func sec(sectionType string, order int, shown *bool, content map[string]interface{}) section.Section {
	return section.Section{ID: uuid.New(), Type: sectionType, Order: order, Visible: shown, Content: content}
}

func newTestSite(t *testing.T, content *Content) *gin.Engine {
	t.Helper()
	renderer, err := NewRenderer(nil)
	require.NoError(t, err)
	engine := gin.New()
	NewSite(content, renderer, nil).Register(engine)
	return engine
}

func baseContent() *Content {
	return &Content{
		Sections: fakeSections{},
		Pages: map[page.Kind]PageSource{
			page.KindLanding: fakePages{},
			page.KindBlog:    fakePages{},
			page.KindCoded:   fakePages{},
		},
		Services:       fakeServices{},
		Clients:        fakeList[*site.Client]{},
		TeamMembers:    fakeList[*site.TeamMember]{},
		Testimonials:   fakeList[*site.Testimonial]{},
		FunnelSteps:    fakeList[*site.FunnelStep]{},
		PortfolioItems: fakeList[*site.PortfolioItem]{},
		Settings:       fakeSettings{},
	}
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSite_HomeFiltersAndSorts(t *testing.T) {
	content := baseContent()
	content.Sections = fakeSections{sections: []section.Section{
		sec(section.TypeCTA, 3, nil, map[string]interface{}{"title": "Third CTA"}),
		sec(section.TypeHero, 1, nil, map[string]interface{}{"title": "Hero Title", "subtitle": "From the section"}),
		sec(section.TypeCTA, 2, visible(false), map[string]interface{}{"title": "Hidden CTA"}),
		sec("carousel-3d", 2, nil, map[string]interface{}{"title": "Unknown Type"}),
		sec(section.TypeFeatureGrid, 2, visible(true), map[string]interface{}{
			"title":   "Second Grid",
			"columns": []interface{}{map[string]interface{}{"title": "Fast"}},
		}),
	}}
	content.Settings = fakeSettings{
		site.SingletonHero: {"subtitle": "From hero settings"},
	}

	w := get(newTestSite(t, content), "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	hero := strings.Index(body, "Hero Title")
	grid := strings.Index(body, "Second Grid")
	cta := strings.Index(body, "Third CTA")
	require.True(t, hero >= 0 && grid >= 0 && cta >= 0, body)
	assert.Less(t, hero, grid)
	assert.Less(t, grid, cta)

	assert.NotContains(t, body, "Hidden CTA")
	assert.NotContains(t, body, "Unknown Type")
	assert.Contains(t, body, "From hero settings")
	assert.NotContains(t, body, "From the section")
}

func TestSite_HomeHeroStaysFirst(t *testing.T) {
	content := baseContent()
	content.Sections = fakeSections{sections: []section.Section{
		sec(section.TypeCTA, 0, nil, map[string]interface{}{"title": "Moved CTA"}),
		sec(section.TypeHero, 1, nil, map[string]interface{}{"title": "Hero Title"}),
	}}

	w := get(newTestSite(t, content), "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	hero := strings.Index(body, "Hero Title")
	cta := strings.Index(body, "Moved CTA")
	require.True(t, hero >= 0 && cta >= 0, body)
	assert.Less(t, hero, cta)
}

func TestSite_HomeLoadFailure(t *testing.T) {
	content := baseContent()
	content.Sections = fakeSections{err: errors.New("store offline")}

	w := get(newTestSite(t, content), "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
}

func TestSite_StaticSections(t *testing.T) {
	content := baseContent()
	content.Sections = fakeSections{sections: []section.Section{
		sec(section.TypeServicesOverview, 1, nil, map[string]interface{}{"title": "What we do"}),
		sec(section.TypeTeam, 2, nil, map[string]interface{}{"title": "The team"}),
		sec(section.TypeContactForm, 3, nil, map[string]interface{}{"title": "Talk to us"}),
	}}
	content.Services = fakeServices{{
		Title: "Web Design", Slug: "web-design", IconURL: "https://cdn.example.com/i.png",
		StartingPrice: decimal.NewFromInt(1500),
	}}
	content.TeamMembers = fakeList[*site.TeamMember]{{Name: "Ana", Role: "Designer", ImageURL: "https://cdn.example.com/a.png"}}
	content.Settings = fakeSettings{site.SingletonSite: {"currency": "usd"}}

	body := get(newTestSite(t, content), "/").Body.String()
	assert.Contains(t, body, `href="/services/web-design"`)
	assert.Contains(t, body, "From 1500 USD")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, `data-endpoint="/api/v1/public/contact"`)
}

func TestSite_ThemeAndFooter(t *testing.T) {
	content := baseContent()
	content.Settings = fakeSettings{
		site.SingletonTheme:  {"primaryColor": "#ff0000", "textColor": "red;}body{display:none"},
		site.SingletonFooter: {"companyName": "Boldnet", "email": "hi@example.com"},
		site.SingletonSite:   {"siteName": "Boldnet Studio"},
	}

	body := get(newTestSite(t, content), "/").Body.String()
	assert.Contains(t, body, "--color-primary:#ff0000;")
	assert.Contains(t, body, "--color-text:"+defaultTheme.TextColor+";")
	assert.NotContains(t, body, "display:none")
	assert.Contains(t, body, "mailto:hi@example.com")
	assert.Contains(t, body, "<title>Boldnet Studio</title>")
}

func TestSite_Pages(t *testing.T) {
	published := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	content := baseContent()
	content.Pages[page.KindLanding] = fakePages{"summer-offer": {
		Kind: page.KindLanding, Title: "Summer Offer", Slug: "summer-offer", Visible: true,
		Sections: []section.Section{
			sec(section.TypeTextImage, 1, nil, map[string]interface{}{
				"title": "Why us",
				"body":  "**Bold** claims <script>alert(1)</script>",
			}),
			sec(section.TypeYouTubeGallery, 2, nil, map[string]interface{}{
				"videos": []interface{}{
					map[string]interface{}{"youtubeUrl": "https://youtu.be/dQw4w9WgXcQ", "title": "Intro"},
					map[string]interface{}{"youtubeUrl": "https://vimeo.com/1", "title": "Elsewhere"},
				},
			}),
		},
	}}
	content.Pages[page.KindBlog] = fakePages{"launch": {
		Kind: page.KindBlog, Title: "We launched", Slug: "launch", Visible: true,
		Details: page.Details{Author: "Sam", PublishedAt: &published},
	}}
	content.Pages[page.KindCoded] = fakePages{"pricing": {
		Kind: page.KindCoded, Title: "Pricing", Slug: "pricing", Visible: true,
		Details: page.Details{Description: "Hand-built pricing page"},
	}}
	engine := newTestSite(t, content)

	w := get(engine, "/lp/summer-offer")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>Bold</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "youtube-nocookie.com/embed/dQw4w9WgXcQ")
	assert.NotContains(t, body, "Elsewhere")

	w = get(engine, "/blog/launch")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "By Sam")
	assert.Contains(t, w.Body.String(), "March 1, 2026")

	w = get(engine, "/coded/pricing")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hand-built pricing page")

	w = get(engine, "/lp/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestSite_ServicePage(t *testing.T) {
	content := baseContent()
	content.Services = fakeServices{{
		Title: "SEO", Slug: "seo", Summary: "Be found", IconURL: "https://cdn.example.com/seo.png",
		Description: "## Audit\nWe review *everything*.", Features: []string{"Keyword research"},
		StartingPrice: decimal.RequireFromString("499.50"),
	}}
	engine := newTestSite(t, content)

	w := get(engine, "/services/seo")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<h2 id="audit">Audit</h2>`)
	assert.Contains(t, body, "<em>everything</em>")
	assert.Contains(t, body, "Starting at 499.50")
	assert.Contains(t, body, "Keyword research")

	assert.Equal(t, http.StatusNotFound, get(engine, "/services/nope").Code)
}

func TestSite_NotFound(t *testing.T) {
	engine := newTestSite(t, baseContent())

	w := get(engine, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = get(engine, "/api/v1/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestThemeCSS(t *testing.T) {
	css := string(ThemeCSS(site.ThemeSettings{PrimaryColor: "#abc", FontFamily: "Inter, sans-serif"}))
	assert.True(t, strings.HasPrefix(css, ":root{"))
	assert.Contains(t, css, "--color-primary:#abc;")
	assert.Contains(t, css, "--font-family:Inter, sans-serif;")
	assert.Contains(t, css, "--color-secondary:"+defaultTheme.SecondaryColor+";")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "", formatPrice(decimal.Zero, "USD"))
	assert.Equal(t, "1200", formatPrice(decimal.NewFromInt(1200), ""))
	assert.Equal(t, "99.90 EUR", formatPrice(decimal.RequireFromString("99.9"), "eur"))
}
