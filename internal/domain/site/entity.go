package site

import (
	"strings"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection names of the flat content entities
const (
	CollectionClients        = "clients"
	CollectionTeamMembers    = "team_members"
	CollectionServices       = "services"
	CollectionTestimonials   = "testimonials"
	CollectionFunnelSteps    = "funnel_steps"
	CollectionPortfolioItems = "portfolio_items"
)

// Entity is a flat content document
type Entity interface {
	shared.Entity
	Collection() string
	Validate() error
	Stamp()
	Inherit(id uuid.UUID, createdAt time.Time)
}

// Ordered entities are sequenced by hand through batch reorders
type Ordered interface {
	Entity
	GetOrder() int
	SetOrder(order int)
}

// Sequence holds the manual position of an ordered entity
type Sequence struct {
	Order int `json:"order"`
}

// GetOrder returns the manual position
func (s *Sequence) GetOrder() int { return s.Order }

// SetOrder sets the manual position
func (s *Sequence) SetOrder(order int) { s.Order = order }

// Client is a customer logo shown on the site
type Client struct {
	shared.BaseEntity
	Name    string `json:"name" validate:"required,max=120"`
	LogoURL string `json:"logoUrl" validate:"required,url"`
	Website string `json:"website" validate:"omitempty,url"`
}

// TeamMember is a person on the team page
type TeamMember struct {
	shared.BaseEntity
	Sequence
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"max=120"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Bio      string `json:"bio" validate:"max=2000"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
}

// Service is an offer with its own public page at /services/{slug}
type Service struct {
	shared.BaseEntity
	Title         string          `json:"title" validate:"required,max=160"`
	Slug          string          `json:"slug" validate:"required,max=120"`
	Summary       string          `json:"summary" validate:"max=500"`
	Description   string          `json:"description" validate:"max=20000"`
	IconURL       string          `json:"iconUrl" validate:"required,url"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	Features      []string        `json:"features" validate:"max=30,dive,max=200"`
}

// Testimonial is a customer quote
type Testimonial struct {
	shared.BaseEntity
	AuthorName string `json:"authorName" validate:"required,max=120"`
	Company    string `json:"company" validate:"max=120"`
	Quote      string `json:"quote" validate:"required,max=2000"`
	ImageURL   string `json:"imageUrl" validate:"required,url"`
	Rating     int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// FunnelStep is one step of the "how we work" process
type FunnelStep struct {
	shared.BaseEntity
	Step        int    `json:"step" validate:"min=1,max=99"`
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
}

// PortfolioItem is a showcased project
type PortfolioItem struct {
	shared.BaseEntity
	Sequence
	Title       string `json:"title" validate:"required,max=160"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	Category    string `json:"category" validate:"max=80"`
	Description string `json:"description" validate:"max=2000"`
	Link        string `json:"link" validate:"omitempty,url"`
}

func (*Client) Collection() string        { return CollectionClients }
func (*TeamMember) Collection() string    { return CollectionTeamMembers }
func (*Service) Collection() string       { return CollectionServices }
func (*Testimonial) Collection() string   { return CollectionTestimonials }
func (*FunnelStep) Collection() string    { return CollectionFunnelSteps }
func (*PortfolioItem) Collection() string { return CollectionPortfolioItems }

func (c *Client) Validate() error      { return shared.ValidateStruct(c) }
func (m *TeamMember) Validate() error  { return shared.ValidateStruct(m) }
func (t *Testimonial) Validate() error { return shared.ValidateStruct(t) }
func (f *FunnelStep) Validate() error  { return shared.ValidateStruct(f) }
func (p *PortfolioItem) Validate() error {
	return shared.ValidateStruct(p)
}

// Validate checks the fields and that the starting price is not negative
func (s *Service) Validate() error {
	s.Slug = strings.TrimSpace(s.Slug)
	if err := shared.ValidateStruct(s); err != nil {
		return err
	}
	if s.StartingPrice.IsNegative() {
		return shared.ErrValidation.WithMessage("StartingPrice must not be negative")
	}
	return nil
}

// PublicPath returns the public URL of the service
func (s *Service) PublicPath() string {
	return "/services/" + s.Slug
}

// PriceLabel renders the starting price, or an empty string when unset
func (s *Service) PriceLabel(currency string) string {
	if s.StartingPrice.IsZero() {
		return ""
	}
	return s.StartingPrice.StringFixed(2) + " " + currency
}

var (
	_ Ordered = (*TeamMember)(nil)
	_ Ordered = (*PortfolioItem)(nil)
	_ Entity  = (*Client)(nil)
	_ Entity  = (*Service)(nil)
	_ Entity  = (*Testimonial)(nil)
	_ Entity  = (*FunnelStep)(nil)
)

// ApplyOrders sets the order of every entity named by the assignments
func ApplyOrders[T Ordered](items []T, assignments []shared.OrderAssignment) {
	pos := make(map[uuid.UUID]int, len(assignments))
	for _, a := range assignments {
		pos[a.ID] = a.Order
	}
	for _, it := range items {
		if o, ok := pos[it.GetID()]; ok {
			it.SetOrder(o)
		}
	}
}
