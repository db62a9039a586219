package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind selects the page collection
type Kind string

const (
	KindLanding Kind = "landing_page"
	KindBlog    Kind = "blog_post"
	KindCoded   Kind = "coded_page"
)

// Collection returns the store collection name of the kind
func (k Kind) Collection() string {
	switch k {
	case KindLanding:
		return "landing_pages"
	case KindBlog:
		return "blog_posts"
	case KindCoded:
		return "coded_landing_pages"
	}
	return ""
}

// PathPrefix returns the public URL prefix of the kind
func (k Kind) PathPrefix() string {
	switch k {
	case KindLanding:
		return "/lp"
	case KindBlog:
		return "/blog"
	case KindCoded:
		return "/coded"
	}
	return ""
}

// Surface returns the section surface offered by the kind's editor
func (k Kind) Surface() section.Surface {
	if k == KindBlog {
		return section.SurfaceBlogPost
	}
	return section.SurfaceLandingPage
}

// HasSections reports whether pages of this kind embed sections.
// Coded pages are rendered by hand and only tracked for their slug.
func (k Kind) HasSections() bool {
	return k == KindLanding || k == KindBlog
}

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	return k.Collection() != ""
}

var (
	ErrNoSections  = shared.NewDomainError("PAGE_HAS_NO_SECTIONS", "Coded pages do not hold sections")
	ErrInvalidKind = shared.NewDomainError("INVALID_PAGE_KIND", "Unknown page kind")
)

// Details holds the optional descriptive fields of a page
type Details struct {
	Description string
	Excerpt     string
	CoverImage  string
	Author      string
	PublishedAt *time.Time
}

// Page is a landing page, blog post or coded page
type Page struct {
	shared.BaseEntity
	Kind     Kind
	Title    string
	Slug     string
	Visible  bool
	Sections []section.Section
	Details
}

// NewPage creates a visible page; an empty slug is derived from the title
func NewPage(kind Kind, title, slug string) (*Page, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	p := &Page{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Visible:    true,
	}
	if kind.HasSections() {
		p.Sections = []section.Section{}
	}
	if err := p.Rename(title, slug); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename updates title and slug
func (p *Page) Rename(title, slug string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.ErrInvalidInput.WithMessage("Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.ErrInvalidInput.WithMessage("Title cannot exceed 200 characters")
	}
	if strings.TrimSpace(slug) == "" {
		slug = NormalizeSlug(title)
	}
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	p.Title = title
	p.Slug = slug
	p.Touch()
	return nil
}

// SetDetails replaces the optional descriptive fields
func (p *Page) SetDetails(d Details) {
	p.Details = d
	p.Touch()
}

// ToggleVisibility flips the page flag; hidden pages are not served publicly
func (p *Page) ToggleVisibility() {
	p.Visible = !p.Visible
	p.Touch()
}

// PublicPath returns the public URL path of the page
func (p *Page) PublicPath() string {
	return p.Kind.PathPrefix() + "/" + p.Slug
}

// AddSection appends a section from the template catalog
func (p *Page) AddSection(sectionType string) (*section.Section, error) {
	if !p.Kind.HasSections() {
		return nil, ErrNoSections
	}
	if _, ok := section.Lookup(sectionType); ok && !section.Allowed(p.Kind.Surface(), sectionType) {
		return nil, section.ErrTemplateNotAllowed.WithMessage(
			fmt.Sprintf("%s sections are not available on this page", sectionType))
	}
	s, err := section.PlanAdd(p.Sections, sectionType)
	if err != nil {
		return nil, err
	}
	p.Sections = append(p.Sections, *s)
	p.Touch()
	return s, nil
}

// ReorderSections gives the section at position i order i
func (p *Page) ReorderSections(ids []uuid.UUID) error {
	if !p.Kind.HasSections() {
		return ErrNoSections
	}
	assignments, err := section.PlanReorder(p.Sections, ids)
	if err != nil {
		return err
	}
	section.ApplyOrders(p.Sections, assignments)
	p.Touch()
	return nil
}

// ToggleSectionVisibility flips the visible flag of one section
func (p *Page) ToggleSectionVisibility(sectionID uuid.UUID) (*section.Section, error) {
	s, ok := section.Find(p.Sections, sectionID)
	if !ok {
		return nil, shared.ErrNotFound.WithMessage("Section not found")
	}
	s.ToggleVisibility()
	p.Touch()
	return s, nil
}

// UpdateSectionContent replaces the content of one section
func (p *Page) UpdateSectionContent(sectionID uuid.UUID, payload map[string]interface{}) (*section.Section, error) {
	s, ok := section.Find(p.Sections, sectionID)
	if !ok {
		return nil, shared.ErrNotFound.WithMessage("Section not found")
	}
	if err := s.ReplaceContent(payload); err != nil {
		return nil, err
	}
	p.Touch()
	return s, nil
}

// DeleteSection removes one section without renumbering the others
func (p *Page) DeleteSection(sectionID uuid.UUID) error {
	s, ok := section.Find(p.Sections, sectionID)
	if !ok {
		return shared.ErrNotFound.WithMessage("Section not found")
	}
	if err := s.CanDelete(); err != nil {
		return err
	}
	p.Sections = section.Remove(p.Sections, sectionID)
	p.Touch()
	return nil
}
