package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/logger"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Lister returns every entity of a collection
type Lister[T any] interface {
	All(ctx context.Context) ([]T, error)
}

// SectionSource returns the homepage sections to render
type SectionSource interface {
	Published(ctx context.Context) ([]section.Section, error)
}

// PageSource returns the visible page published at a slug
type PageSource interface {
	GetPublished(ctx context.Context, slug string) (*page.Page, error)
}

// ServiceSource lists services and resolves their public pages
type ServiceSource interface {
	Lister[*site.Service]
	GetBySlug(ctx context.Context, slug string) (*site.Service, error)
}

// SettingsSource decodes a singleton document into its typed view
type SettingsSource interface {
	Decode(ctx context.Context, collection string, out interface{}) error
}

// Content is everything the public site reads
type Content struct {
	Sections       SectionSource
	Pages          map[page.Kind]PageSource
	Services       ServiceSource
	Clients        Lister[*site.Client]
	TeamMembers    Lister[*site.TeamMember]
	Testimonials   Lister[*site.Testimonial]
	FunnelSteps    Lister[*site.FunnelStep]
	PortfolioItems Lister[*site.PortfolioItem]
	Settings       SettingsSource
}

// Chrome is the data shared by every page: theme, footer and metadata
type Chrome struct {
	Title       string
	Description string
	SiteName    string
	Site        site.SiteSettings
	Theme       site.ThemeSettings
	ThemeCSS    template.CSS
	Footer      site.FooterSettings
	Year        int
	Body        template.HTML
}

// pageSources memoizes the settings documents read while rendering one request
type pageSources struct {
	content *Content
	home    bool

	siteOnce sync.Once
	siteDoc  site.SiteSettings
	siteErr  error

	heroOnce sync.Once
	heroDoc  site.HeroSettings
	heroErr  error
}

func (p *pageSources) site(ctx context.Context) (site.SiteSettings, error) {
	p.siteOnce.Do(func() {
		p.siteErr = p.content.Settings.Decode(ctx, site.SingletonSite, &p.siteDoc)
	})
	return p.siteDoc, p.siteErr
}

func (p *pageSources) hero(ctx context.Context) (site.HeroSettings, error) {
	p.heroOnce.Do(func() {
		p.heroErr = p.content.Settings.Decode(ctx, site.SingletonHero, &p.heroDoc)
	})
	return p.heroDoc, p.heroErr
}

// Site serves the public pages
type Site struct {
	content  *Content
	renderer *Renderer
	logger   *zap.Logger
}

// NewSite creates the public site handler
func NewSite(content *Content, renderer *Renderer, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Site{content: content, renderer: renderer, logger: logger}
}

// Register mounts the public routes. Unmatched paths outside the API get
// the HTML 404 page.
func (s *Site) Register(engine *gin.Engine) {
	engine.GET("/", s.Home)
	engine.GET("/lp/:slug", s.pageHandler(page.KindLanding))
	engine.GET("/blog/:slug", s.pageHandler(page.KindBlog))
	engine.GET("/coded/:slug", s.pageHandler(page.KindCoded))
	engine.GET("/services/:slug", s.Service)
	engine.NoRoute(s.NotFound)
}

// Home renders the visible homepage sections
func (s *Site) Home(c *gin.Context) {
	ctx := c.Request.Context()
	src := &pageSources{content: s.content, home: true}

	sections, err := s.content.Sections.Published(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	chrome, err := s.chrome(ctx, src, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	s.write(c, http.StatusOK, "page-home", map[string]any{
		"Sections": s.renderer.Sections(ctx, src, sections),
	}, chrome)
}

type articleView struct {
	Kind     page.Kind
	Title    string
	Sections []template.HTML
	page.Details
}

func (s *Site) pageHandler(kind page.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		pages, ok := s.content.Pages[kind]
		if !ok {
			s.NotFound(c)
			return
		}
		p, err := pages.GetPublished(ctx, c.Param("slug"))
		if err != nil {
			s.fail(c, err)
			return
		}

		src := &pageSources{content: s.content}
		chrome, err := s.chrome(ctx, src, p.Title)
		if err != nil {
			s.fail(c, err)
			return
		}
		chrome.Description = firstNonEmpty(p.Description, p.Excerpt, chrome.Description)

		if !kind.HasSections() {
			s.write(c, http.StatusOK, "page-coded", p, chrome)
			return
		}
		s.write(c, http.StatusOK, "page-article", articleView{
			Kind:     p.Kind,
			Title:    p.Title,
			Sections: s.renderer.Sections(ctx, src, p.Sections),
			Details:  p.Details,
		}, chrome)
	}
}

type servicePage struct {
	Title       string
	Summary     string
	IconURL     string
	Price       string
	Description template.HTML
	Features    []string
}

// Service renders the page of one service
func (s *Site) Service(c *gin.Context) {
	ctx := c.Request.Context()
	svc, err := s.content.Services.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	src := &pageSources{content: s.content}
	chrome, err := s.chrome(ctx, src, svc.Title)
	if err != nil {
		s.fail(c, err)
		return
	}
	chrome.Description = firstNonEmpty(svc.Summary, chrome.Description)

	s.write(c, http.StatusOK, "page-service", servicePage{
		Title:       svc.Title,
		Summary:     svc.Summary,
		IconURL:     svc.IconURL,
		Price:       formatPrice(svc.StartingPrice, chrome.Site.Currency),
		Description: s.renderer.Markdown(svc.Description),
		Features:    svc.Features,
	}, chrome)
}

// NotFound renders the 404 page, or the JSON error envelope under /api
func (s *Site) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found"))
		return
	}
	ctx := c.Request.Context()
	chrome, err := s.chrome(ctx, &pageSources{content: s.content}, "Page not found")
	if err != nil {
		// settings are unavailable; render with the defaults
		chrome = s.defaultChrome("Page not found")
	}
	s.write(c, http.StatusNotFound, "page-notfound", nil, chrome)
}

// fail maps a load error to the 404 or error page
func (s *Site) fail(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		s.NotFound(c)
		return
	}
	logger.GetGinLogger(c).Error("Failed to render page",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	s.write(c, http.StatusInternalServerError, "page-error", nil, s.defaultChrome("Error"))
}

func (s *Site) write(c *gin.Context, status int, name string, data any, chrome Chrome) {
	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, name, data, chrome); err != nil {
		logger.GetGinLogger(c).Error("Template execution failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Site) chrome(ctx context.Context, src *pageSources, title string) (Chrome, error) {
	settings, err := src.site(ctx)
	if err != nil {
		return Chrome{}, err
	}
	var theme site.ThemeSettings
	if err := s.content.Settings.Decode(ctx, site.SingletonTheme, &theme); err != nil {
		return Chrome{}, err
	}
	var footer site.FooterSettings
	if err := s.content.Settings.Decode(ctx, site.SingletonFooter, &footer); err != nil {
		return Chrome{}, err
	}

	chrome := s.defaultChrome(title)
	chrome.Site = settings
	chrome.Theme = theme
	chrome.ThemeCSS = ThemeCSS(theme)
	chrome.Footer = footer
	chrome.SiteName = firstNonEmpty(settings.SiteName, footer.CompanyName, chrome.SiteName)
	chrome.Description = settings.DefaultDescription
	chrome.Title = pageTitle(title, firstNonEmpty(settings.DefaultTitle, chrome.SiteName))
	return chrome, nil
}

func (s *Site) defaultChrome(title string) Chrome {
	return Chrome{
		Title:    pageTitle(title, "Home"),
		SiteName: "Home",
		ThemeCSS: ThemeCSS(site.ThemeSettings{}),
		Year:     time.Now().Year(),
	}
}

func pageTitle(title, fallback string) string {
	if title == "" {
		return fallback
	}
	if fallback == "" || fallback == title {
		return title
	}
	return title + " | " + fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
