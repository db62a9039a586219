package app

import (
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/handler"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/router"
)

// NewAPIHandlers creates one handler per service. system and live are built
// by the caller since they own process-level resources; either may be nil.
func NewAPIHandlers(s *Services, system *handler.SystemHandler, live *handler.LiveHandler) router.APIHandlers {
	h := router.APIHandlers{
		System:         system,
		Sections:       handler.NewSectionHandler(s.Sections),
		Pages:          make(map[page.Kind]*handler.PageHandler, len(s.Pages)),
		Clients:        handler.NewCollectionHandler(s.Site.Clients),
		TeamMembers:    handler.NewOrderedCollectionHandler(s.Site.TeamMembers),
		Services:       handler.NewCollectionHandler(s.Site.Services.CollectionService),
		Testimonials:   handler.NewCollectionHandler(s.Site.Testimonials),
		FunnelSteps:    handler.NewCollectionHandler(s.Site.FunnelSteps),
		PortfolioItems: handler.NewOrderedCollectionHandler(s.Site.PortfolioItems),
		Settings:       handler.NewSettingsHandler(s.Settings),
		Submissions:    handler.NewSubmissionHandler(s.Submissions),
		Live:           live,
	}
	for kind, svc := range s.Pages {
		h.Pages[kind] = handler.NewPageHandler(svc)
	}
	if s.Auth != nil {
		h.Auth = handler.NewAuthHandler(s.Auth)
	}
	if s.Media != nil {
		h.Media = handler.NewMediaHandler(s.Media)
	}
	return h
}
