package site

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"go.uber.org/zap"
)

// Repositories groups the flat collection repositories
type Repositories struct {
	Clients        site.Repository[*site.Client]
	TeamMembers    site.OrderedRepository[*site.TeamMember]
	Services       site.ServiceRepository
	Testimonials   site.Repository[*site.Testimonial]
	FunnelSteps    site.Repository[*site.FunnelStep]
	PortfolioItems site.OrderedRepository[*site.PortfolioItem]
}

// Services groups the flat collection services
type Services struct {
	Clients        *CollectionService[*site.Client]
	TeamMembers    *OrderedCollectionService[*site.TeamMember]
	Services       *ServiceCatalog
	Testimonials   *CollectionService[*site.Testimonial]
	FunnelSteps    *CollectionService[*site.FunnelStep]
	PortfolioItems *OrderedCollectionService[*site.PortfolioItem]
}

// NewServices wires one service per collection
func NewServices(repos Repositories, announcer *event.Announcer, logger *zap.Logger) *Services {
	return &Services{
		Clients: NewCollectionService(repos.Clients,
			func() *site.Client { return &site.Client{} }, announcer, logger),
		TeamMembers: NewOrderedCollectionService(repos.TeamMembers,
			func() *site.TeamMember { return &site.TeamMember{} }, announcer, logger),
		Services: NewServiceCatalog(repos.Services, announcer, logger),
		Testimonials: NewCollectionService(repos.Testimonials,
			func() *site.Testimonial { return &site.Testimonial{} }, announcer, logger),
		FunnelSteps: NewCollectionService(repos.FunnelSteps,
			func() *site.FunnelStep { return &site.FunnelStep{} }, announcer, logger),
		PortfolioItems: NewOrderedCollectionService(repos.PortfolioItems,
			func() *site.PortfolioItem { return &site.PortfolioItem{} }, announcer, logger),
	}
}

// ServiceCatalog manages services, which also have a public page per slug
type ServiceCatalog struct {
	*CollectionService[*site.Service]
	serviceRepo site.ServiceRepository
}

// NewServiceCatalog creates the services collection service
func NewServiceCatalog(repo site.ServiceRepository, announcer *event.Announcer, logger *zap.Logger) *ServiceCatalog {
	return &ServiceCatalog{
		CollectionService: NewCollectionService[*site.Service](repo,
			func() *site.Service { return &site.Service{} }, announcer, logger,
			WithPrepare(NormalizeServiceSlug)),
		serviceRepo: repo,
	}
}

// GetBySlug returns the service published at /services/{slug}
func (s *ServiceCatalog) GetBySlug(ctx context.Context, slug string) (*site.Service, error) {
	svc, err := s.serviceRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// NormalizeServiceSlug lower-kebab-cases the slug, deriving it from the title when empty
func NormalizeServiceSlug(svc *site.Service) {
	slug := page.NormalizeSlug(svc.Slug)
	if slug == "" {
		slug = page.NormalizeSlug(svc.Title)
	}
	svc.Slug = slug
}
