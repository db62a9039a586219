package models

import (
	"encoding/json"

	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ClientModel is the persistence model for site.Client
type ClientModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(120);not null"`
	LogoURL string `gorm:"type:varchar(500);not null"`
	Website string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string { return site.CollectionClients }

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *site.Client {
	return &site.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		LogoURL:    m.LogoURL,
		Website:    m.Website,
	}
}

// FromDomain populates the persistence model from a domain Client
func (m *ClientModel) FromDomain(c *site.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.LogoURL = c.LogoURL
	m.Website = c.Website
}

// TeamMemberModel is the persistence model for site.TeamMember
type TeamMemberModel struct {
	BaseModel
	SortOrder int    `gorm:"column:sort_order;not null;default:0;index"`
	Name      string `gorm:"type:varchar(120);not null"`
	Role      string `gorm:"type:varchar(120)"`
	ImageURL  string `gorm:"type:varchar(500);not null"`
	Bio       string `gorm:"type:text"`
	LinkedIn  string `gorm:"column:linkedin;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string { return site.CollectionTeamMembers }

// ToDomain converts the persistence model to a domain TeamMember
func (m *TeamMemberModel) ToDomain() *site.TeamMember {
	return &site.TeamMember{
		BaseEntity: m.BaseModel.ToDomain(),
		Sequence:   site.Sequence{Order: m.SortOrder},
		Name:       m.Name,
		Role:       m.Role,
		ImageURL:   m.ImageURL,
		Bio:        m.Bio,
		LinkedIn:   m.LinkedIn,
	}
}

// FromDomain populates the persistence model from a domain TeamMember
func (m *TeamMemberModel) FromDomain(t *site.TeamMember) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.SortOrder = t.Order
	m.Name = t.Name
	m.Role = t.Role
	m.ImageURL = t.ImageURL
	m.Bio = t.Bio
	m.LinkedIn = t.LinkedIn
}

// ServiceModel is the persistence model for site.Service
type ServiceModel struct {
	BaseModel
	Title         string          `gorm:"type:varchar(160);not null"`
	Slug          string          `gorm:"type:varchar(120);not null;index"`
	Summary       string          `gorm:"type:varchar(500)"`
	Description   string          `gorm:"type:text"`
	IconURL       string          `gorm:"type:varchar(500);not null"`
	StartingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Features      datatypes.JSON  `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string { return site.CollectionServices }

// ToDomain converts the persistence model to a domain Service.
// Unreadable feature lists come back empty.
func (m *ServiceModel) ToDomain() *site.Service {
	features := []string{}
	if len(m.Features) > 0 {
		_ = json.Unmarshal(m.Features, &features)
	}
	return &site.Service{
		BaseEntity:    m.BaseModel.ToDomain(),
		Title:         m.Title,
		Slug:          m.Slug,
		Summary:       m.Summary,
		Description:   m.Description,
		IconURL:       m.IconURL,
		StartingPrice: m.StartingPrice,
		Features:      features,
	}
}

// FromDomain populates the persistence model from a domain Service
func (m *ServiceModel) FromDomain(s *site.Service) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Title = s.Title
	m.Slug = s.Slug
	m.Summary = s.Summary
	m.Description = s.Description
	m.IconURL = s.IconURL
	m.StartingPrice = s.StartingPrice
	features := s.Features
	if features == nil {
		features = []string{}
	}
	raw, _ := json.Marshal(features)
	m.Features = datatypes.JSON(raw)
}

// TestimonialModel is the persistence model for site.Testimonial
type TestimonialModel struct {
	BaseModel
	AuthorName string `gorm:"type:varchar(120);not null"`
	Company    string `gorm:"type:varchar(120)"`
	Quote      string `gorm:"type:text;not null"`
	ImageURL   string `gorm:"type:varchar(500);not null"`
	Rating     int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TestimonialModel) TableName() string { return site.CollectionTestimonials }

// ToDomain converts the persistence model to a domain Testimonial
func (m *TestimonialModel) ToDomain() *site.Testimonial {
	return &site.Testimonial{
		BaseEntity: m.BaseModel.ToDomain(),
		AuthorName: m.AuthorName,
		Company:    m.Company,
		Quote:      m.Quote,
		ImageURL:   m.ImageURL,
		Rating:     m.Rating,
	}
}

// FromDomain populates the persistence model from a domain Testimonial
func (m *TestimonialModel) FromDomain(t *site.Testimonial) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.AuthorName = t.AuthorName
	m.Company = t.Company
	m.Quote = t.Quote
	m.ImageURL = t.ImageURL
	m.Rating = t.Rating
}

// FunnelStepModel is the persistence model for site.FunnelStep
type FunnelStepModel struct {
	BaseModel
	Step        int    `gorm:"not null;index"`
	Title       string `gorm:"type:varchar(160);not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (FunnelStepModel) TableName() string { return site.CollectionFunnelSteps }

// ToDomain converts the persistence model to a domain FunnelStep
func (m *FunnelStepModel) ToDomain() *site.FunnelStep {
	return &site.FunnelStep{
		BaseEntity:  m.BaseModel.ToDomain(),
		Step:        m.Step,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
	}
}

// FromDomain populates the persistence model from a domain FunnelStep
func (m *FunnelStepModel) FromDomain(f *site.FunnelStep) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.Step = f.Step
	m.Title = f.Title
	m.Description = f.Description
	m.ImageURL = f.ImageURL
}

// PortfolioItemModel is the persistence model for site.PortfolioItem
type PortfolioItemModel struct {
	BaseModel
	SortOrder   int    `gorm:"column:sort_order;not null;default:0;index"`
	Title       string `gorm:"type:varchar(160);not null"`
	ImageURL    string `gorm:"type:varchar(500);not null"`
	Category    string `gorm:"type:varchar(80);index"`
	Description string `gorm:"type:text"`
	Link        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PortfolioItemModel) TableName() string { return site.CollectionPortfolioItems }

// ToDomain converts the persistence model to a domain PortfolioItem
func (m *PortfolioItemModel) ToDomain() *site.PortfolioItem {
	return &site.PortfolioItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		Sequence:    site.Sequence{Order: m.SortOrder},
		Title:       m.Title,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		Description: m.Description,
		Link:        m.Link,
	}
}

// FromDomain populates the persistence model from a domain PortfolioItem
func (m *PortfolioItemModel) FromDomain(p *site.PortfolioItem) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SortOrder = p.Order
	m.Title = p.Title
	m.ImageURL = p.ImageURL
	m.Category = p.Category
	m.Description = p.Description
	m.Link = p.Link
}
