package persistence

import (
	"github.com/atedres/boldnet-sub000/internal/domain/identity"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/domain/submission"
	"gorm.io/gorm"
)

// Repositories groups every repository over one connection
type Repositories struct {
	Sections       section.Repository
	Pages          map[page.Kind]page.Repository
	Clients        site.Repository[*site.Client]
	TeamMembers    site.OrderedRepository[*site.TeamMember]
	Services       site.ServiceRepository
	Testimonials   site.Repository[*site.Testimonial]
	FunnelSteps    site.Repository[*site.FunnelStep]
	PortfolioItems site.OrderedRepository[*site.PortfolioItem]
	Singletons     site.SingletonRepository
	Contacts       submission.ContactRepository
	Quotes         submission.QuoteRepository
	Users          identity.UserRepository
}

// NewRepositories creates every repository over db
func NewRepositories(db *gorm.DB) *Repositories {
	pages := make(map[page.Kind]page.Repository, len(PageKinds))
	for _, kind := range PageKinds {
		pages[kind] = NewGormPageRepository(db, kind)
	}
	return &Repositories{
		Sections:       NewGormSectionRepository(db),
		Pages:          pages,
		Clients:        NewGormClientRepository(db),
		TeamMembers:    NewGormTeamMemberRepository(db),
		Services:       NewGormServiceRepository(db),
		Testimonials:   NewGormTestimonialRepository(db),
		FunnelSteps:    NewGormFunnelStepRepository(db),
		PortfolioItems: NewGormPortfolioItemRepository(db),
		Singletons:     NewGormSingletonRepository(db),
		Contacts:       NewGormContactRepository(db),
		Quotes:         NewGormQuoteRepository(db),
		Users:          NewGormUserRepository(db),
	}
}
