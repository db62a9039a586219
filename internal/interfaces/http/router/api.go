package router

import (
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// pagePaths maps page kinds to their API collection path
var pagePaths = map[page.Kind]string{
	page.KindLanding: "/landing-pages",
	page.KindBlog:    "/blog-posts",
	page.KindCoded:   "/coded-pages",
}

// PagePath returns the API path of a page kind
func PagePath(kind page.Kind) string {
	return pagePaths[kind]
}

// APIHandlers holds every handler mounted under the versioned API
type APIHandlers struct {
	System         *handler.SystemHandler
	Auth           *handler.AuthHandler
	Sections       *handler.SectionHandler
	Pages          map[page.Kind]*handler.PageHandler
	Clients        *handler.CollectionHandler[*site.Client]
	TeamMembers    *handler.OrderedCollectionHandler[*site.TeamMember]
	Services       *handler.CollectionHandler[*site.Service]
	Testimonials   *handler.CollectionHandler[*site.Testimonial]
	FunnelSteps    *handler.CollectionHandler[*site.FunnelStep]
	PortfolioItems *handler.OrderedCollectionHandler[*site.PortfolioItem]
	Settings       *handler.SettingsHandler
	Submissions    *handler.SubmissionHandler
	Media          *handler.MediaHandler
	Live           *handler.LiveHandler
}

// APIMiddleware holds the per-group middleware
type APIMiddleware struct {
	// Auth guards every admin route
	Auth gin.HandlerFunc
	// LiveAuth guards the event stream, which may carry its token in the query
	LiveAuth gin.HandlerFunc
	// AuthLimit throttles sign-in and sign-up
	AuthLimit gin.HandlerFunc
	// FormLimit throttles the public forms
	FormLimit gin.HandlerFunc
	// UploadLimit replaces the default body limit on image uploads
	UploadLimit gin.HandlerFunc
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// APIGroups builds the route groups of the site API
func APIGroups(h APIHandlers, mw APIMiddleware) []*DomainGroup {
	groups := make([]*DomainGroup, 0, 16)

	if h.System != nil {
		system := NewDomainGroup("system", "/system")
		system.GET("/info", h.System.GetSystemInfo)
		system.GET("/ping", h.System.Ping)
		system.GET("/health", h.System.Health)
		groups = append(groups, system)
	}

	if h.Auth != nil {
		auth := NewDomainGroup("auth", "/auth")
		auth.POST("/sign-up", chain(mw.AuthLimit, h.Auth.SignUp)...)
		auth.POST("/sign-in", chain(mw.AuthLimit, h.Auth.SignIn)...)
		groups = append(groups, auth)

		session := NewDomainGroup("session", "/auth").Use(chain(mw.Auth)...)
		session.POST("/sign-out", h.Auth.SignOut)
		session.GET("/me", h.Auth.Me)
		groups = append(groups, session)
	}

	if h.Submissions != nil {
		public := NewDomainGroup("public", "/public")
		public.POST("/contact", chain(mw.FormLimit, h.Submissions.SubmitContact)...)
		public.POST("/quote", chain(mw.FormLimit, h.Submissions.SubmitQuote)...)
		groups = append(groups, public)
	}

	if h.Live != nil {
		live := NewDomainGroup("live", "").Use(chain(mw.LiveAuth)...)
		live.GET("/live", h.Live.Stream)
		groups = append(groups, live)
	}

	admin := NewDomainGroup("admin", "").Use(chain(mw.Auth)...)

	if h.Sections != nil {
		sections := admin.Group("sections", "/sections")
		sections.GET("", h.Sections.List)
		sections.GET("/templates", h.Sections.Templates)
		sections.POST("", h.Sections.Add)
		sections.PUT("/order", h.Sections.Reorder)
		sections.PUT("/:id/content", h.Sections.UpdateContent)
		sections.PATCH("/:id/visibility", h.Sections.ToggleVisibility)
		sections.DELETE("/:id", h.Sections.Delete)
	}

	for _, kind := range []page.Kind{page.KindLanding, page.KindBlog, page.KindCoded} {
		ph, ok := h.Pages[kind]
		if !ok || ph == nil {
			continue
		}
		pages := admin.Group(string(kind), PagePath(kind))
		pages.GET("", ph.List)
		pages.GET("/templates", ph.Templates)
		pages.POST("", ph.Create)
		pages.GET("/:id", ph.Get)
		pages.PUT("/:id", ph.Update)
		pages.DELETE("/:id", ph.Delete)
		if kind.HasSections() {
			pages.POST("/:id/sections", ph.AddSection)
			pages.PUT("/:id/sections/order", ph.ReorderSections)
			pages.PATCH("/:id/sections/:sid/visibility", ph.ToggleSectionVisibility)
			pages.PUT("/:id/sections/:sid/content", ph.UpdateSectionContent)
			pages.DELETE("/:id/sections/:sid", ph.DeleteSection)
		}
	}

	registerCollection(admin, "/clients", h.Clients)
	registerCollection(admin, "/services", h.Services)
	registerCollection(admin, "/testimonials", h.Testimonials)
	registerCollection(admin, "/funnel-steps", h.FunnelSteps)
	registerOrderedCollection(admin, "/team-members", h.TeamMembers)
	registerOrderedCollection(admin, "/portfolio-items", h.PortfolioItems)

	if h.Settings != nil {
		settings := admin.Group("settings", "/settings")
		settings.GET("/:name", h.Settings.Get)
		settings.PATCH("/:name", h.Settings.Patch)
	}

	if h.Submissions != nil {
		contacts := admin.Group("contact-submissions", "/contact-submissions")
		contacts.GET("", h.Submissions.ListContacts)
		contacts.GET("/:id", h.Submissions.GetContact)
		contacts.DELETE("/:id", h.Submissions.DeleteContact)

		quotes := admin.Group("quote-requests", "/quote-requests")
		quotes.GET("", h.Submissions.ListQuotes)
		quotes.GET("/:id", h.Submissions.GetQuote)
		quotes.PATCH("/:id/status", h.Submissions.ToggleQuoteStatus)
		quotes.DELETE("/:id", h.Submissions.DeleteQuote)
	}

	if h.Media != nil {
		media := admin.Group("media", "/media")
		media.POST("/images", chain(mw.UploadLimit, h.Media.UploadImage)...)
		media.POST("/icons", h.Media.GenerateIcon)
	}

	return append(groups, admin)
}

// collectionRoutes is satisfied by both collection handler flavours
type collectionRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCollection[T site.Entity](admin *DomainGroup, prefix string, h *handler.CollectionHandler[T]) {
	if h == nil {
		return
	}
	mountCollection(admin.Group(prefix, prefix), h)
}

func registerOrderedCollection[T site.Ordered](admin *DomainGroup, prefix string, h *handler.OrderedCollectionHandler[T]) {
	if h == nil {
		return
	}
	group := admin.Group(prefix, prefix)
	group.PUT("/order", h.Reorder)
	mountCollection(group, h)
}

func mountCollection(group *DomainGroup, h collectionRoutes) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
