package page

import (
	"time"

	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/domain/page"
	"github.com/google/uuid"
)

// CreatePageRequest represents a request to create a page.
// An empty slug is derived from the title.
type CreatePageRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Slug        string     `json:"slug" binding:"omitempty,max=120"`
	Description string     `json:"description" binding:"max=500"`
	Excerpt     string     `json:"excerpt" binding:"max=1000"`
	CoverImage  string     `json:"coverImage" binding:"omitempty,url,max=1000"`
	Author      string     `json:"author" binding:"max=120"`
	PublishedAt *time.Time `json:"publishedAt"`
	Visible     *bool      `json:"visible"`
}

// UpdatePageRequest represents a partial page update
type UpdatePageRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Slug        *string    `json:"slug" binding:"omitempty,max=120"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Excerpt     *string    `json:"excerpt" binding:"omitempty,max=1000"`
	CoverImage  *string    `json:"coverImage" binding:"omitempty,max=1000"`
	Author      *string    `json:"author" binding:"omitempty,max=120"`
	PublishedAt *time.Time `json:"publishedAt"`
	Visible     *bool      `json:"visible"`
}

// ListPagesQuery represents list query parameters
type ListPagesQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Visible  *bool  `form:"visible"`
}

// PageResponse represents a page with its sections
type PageResponse struct {
	ID          uuid.UUID                    `json:"id"`
	Kind        page.Kind                    `json:"kind"`
	Title       string                       `json:"title"`
	Slug        string                       `json:"slug"`
	Path        string                       `json:"path"`
	Visible     bool                         `json:"visible"`
	Description string                       `json:"description,omitempty"`
	Excerpt     string                       `json:"excerpt,omitempty"`
	CoverImage  string                       `json:"coverImage,omitempty"`
	Author      string                       `json:"author,omitempty"`
	PublishedAt *time.Time                   `json:"publishedAt,omitempty"`
	Sections    []sectionapp.SectionResponse `json:"content,omitempty"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}

// PageListItem represents a page in list responses
type PageListItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Path         string    `json:"path"`
	Visible      bool      `json:"visible"`
	SectionCount int       `json:"sectionCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToPageResponse converts a domain page to a response DTO
func ToPageResponse(p *page.Page) PageResponse {
	resp := PageResponse{
		ID:          p.ID,
		Kind:        p.Kind,
		Title:       p.Title,
		Slug:        p.Slug,
		Path:        p.PublicPath(),
		Visible:     p.Visible,
		Description: p.Description,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Author:      p.Author,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Kind.HasSections() {
		resp.Sections = sectionapp.ToSectionResponses(p.Sections)
	}
	return resp
}

// ToPageListItem converts a domain page to a list item
func ToPageListItem(p *page.Page) PageListItem {
	return PageListItem{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Path:         p.PublicPath(),
		Visible:      p.Visible,
		SectionCount: len(p.Sections),
		UpdatedAt:    p.UpdatedAt,
	}
}
