// Package app wires repositories into application services and services
// into HTTP handlers.
package app

import (
	"github.com/atedres/boldnet-sub000/internal/application/event"
	identityapp "github.com/atedres/boldnet-sub000/internal/application/identity"
	mediaapp "github.com/atedres/boldnet-sub000/internal/application/media"
	pageapp "github.com/atedres/boldnet-sub000/internal/application/page"
	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/application/seed"
	siteapp "github.com/atedres/boldnet-sub000/internal/application/site"
	submissionapp "github.com/atedres/boldnet-sub000/internal/application/submission"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/auth"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/atedres/boldnet-sub000/internal/interfaces/web"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by the services. Nil fields fall back
// to no-op or in-memory implementations, except JWT which disables auth.
type Deps struct {
	Publisher   shared.ChangePublisher
	Metrics     *telemetry.ContentMetrics
	JWT         *auth.JWTService
	Revocations auth.RevocationList
	Auth        identityapp.AuthServiceConfig
	Media       *mediaapp.MediaService
	Logger      *zap.Logger
}

// Services holds every application service
type Services struct {
	Sections    *sectionapp.SectionService
	Pages       map[page.Kind]*pageapp.PageService
	Site        *siteapp.Services
	Settings    *siteapp.SettingsService
	Submissions *submissionapp.SubmissionService
	Auth        *identityapp.AuthService
	Media       *mediaapp.MediaService
	Announcer   *event.Announcer
	logger      *zap.Logger
}

// NewServices creates the application services over repos
func NewServices(repos *persistence.Repositories, deps Deps) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	announcer := event.NewAnnouncer(deps.Publisher, deps.Metrics, logger)

	s := &Services{
		Sections: sectionapp.NewSectionService(repos.Sections, announcer, logger),
		Pages:    make(map[page.Kind]*pageapp.PageService, len(persistence.PageKinds)),
		Site: siteapp.NewServices(siteapp.Repositories{
			Clients:        repos.Clients,
			TeamMembers:    repos.TeamMembers,
			Services:       repos.Services,
			Testimonials:   repos.Testimonials,
			FunnelSteps:    repos.FunnelSteps,
			PortfolioItems: repos.PortfolioItems,
		}, announcer, logger),
		Settings:    siteapp.NewSettingsService(repos.Singletons, announcer, logger),
		Submissions: submissionapp.NewSubmissionService(repos.Contacts, repos.Quotes, announcer, deps.Metrics, logger),
		Media:       deps.Media,
		Announcer:   announcer,
		logger:      logger,
	}
	for _, kind := range persistence.PageKinds {
		s.Pages[kind] = pageapp.NewPageService(repos.Pages[kind], announcer, logger)
	}
	if deps.JWT != nil {
		s.Auth = identityapp.NewAuthService(repos.Users, deps.JWT, deps.Revocations, deps.Auth, logger)
	}
	return s
}

// PageServices lists the page services in kind order
func (s *Services) PageServices() []*pageapp.PageService {
	out := make([]*pageapp.PageService, 0, len(s.Pages))
	for _, kind := range persistence.PageKinds {
		if svc, ok := s.Pages[kind]; ok {
			out = append(out, svc)
		}
	}
	return out
}

// Seeder returns a fixture loader over these services
func (s *Services) Seeder() *seed.Seeder {
	return seed.NewSeeder(s.Sections, s.PageServices(), s.Site, s.Settings, s.logger)
}

// WebContent exposes the services the public site reads
func (s *Services) WebContent() *web.Content {
	pages := make(map[page.Kind]web.PageSource, len(s.Pages))
	for kind, svc := range s.Pages {
		pages[kind] = svc
	}
	return &web.Content{
		Sections:       s.Sections,
		Pages:          pages,
		Services:       s.Site.Services,
		Clients:        s.Site.Clients,
		TeamMembers:    s.Site.TeamMembers,
		Testimonials:   s.Site.Testimonials,
		FunnelSteps:    s.Site.FunnelSteps,
		PortfolioItems: s.Site.PortfolioItems,
		Settings:       s.Settings,
	}
}
