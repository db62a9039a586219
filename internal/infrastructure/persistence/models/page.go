package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"gorm.io/datatypes"
)

// PageModel is the persistence model shared by landing pages, blog posts and
// coded pages. Each kind lives in its own table; the repository picks it.
// Indexes are created per table by name, so the struct carries no index tags.
type PageModel struct {
	BaseModel
	Title       string         `gorm:"type:varchar(200);not null"`
	Slug        string         `gorm:"type:varchar(120);not null"`
	Visible     bool           `gorm:"not null"`
	Sections    datatypes.JSON `gorm:"type:jsonb"`
	Description string         `gorm:"type:text"`
	Excerpt     string         `gorm:"type:text"`
	CoverImage  string         `gorm:"type:varchar(500)"`
	Author      string         `gorm:"type:varchar(120)"`
	PublishedAt *time.Time
}

// ToDomain converts the persistence model to a domain Page of the given kind
func (m *PageModel) ToDomain(kind page.Kind) (*page.Page, error) {
	p := &page.Page{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       kind,
		Title:      m.Title,
		Slug:       m.Slug,
		Visible:    m.Visible,
		Details: page.Details{
			Description: m.Description,
			Excerpt:     m.Excerpt,
			CoverImage:  m.CoverImage,
			Author:      m.Author,
			PublishedAt: m.PublishedAt,
		},
	}
	if kind.HasSections() {
		p.Sections = []section.Section{}
		if len(m.Sections) > 0 {
			if err := json.Unmarshal(m.Sections, &p.Sections); err != nil {
				return nil, fmt.Errorf("decode sections of page %s: %w", m.ID, err)
			}
		}
	}
	return p, nil
}

// FromDomain populates the persistence model from a domain Page
func (m *PageModel) FromDomain(p *page.Page) error {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Title = p.Title
	m.Slug = p.Slug
	m.Visible = p.Visible
	m.Description = p.Description
	m.Excerpt = p.Excerpt
	m.CoverImage = p.CoverImage
	m.Author = p.Author
	m.PublishedAt = p.PublishedAt
	m.Sections = nil
	if p.Kind.HasSections() {
		sections := p.Sections
		if sections == nil {
			sections = []section.Section{}
		}
		raw, err := json.Marshal(sections)
		if err != nil {
			return fmt.Errorf("encode sections of page %s: %w", p.ID, err)
		}
		m.Sections = datatypes.JSON(raw)
	}
	return nil
}
