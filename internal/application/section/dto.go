package section

import (
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/google/uuid"
)

// AddSectionRequest represents a request to add a section from the catalog
type AddSectionRequest struct {
	Type string `json:"type" binding:"required,max=60"`
}

// ReorderSectionsRequest carries the drag-and-drop sequence of section ids
type ReorderSectionsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=200"`
}

// UpdateContentRequest replaces the content of a section
type UpdateContentRequest struct {
	Content map[string]interface{} `json:"content" binding:"required"`
}

// SectionResponse represents a section in API responses
type SectionResponse struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Order     int                    `json:"order"`
	Visible   bool                   `json:"visible"`
	IsHero    bool                   `json:"isHero"`
	Content   map[string]interface{} `json:"content"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// TemplateResponse represents a catalog entry offered by an editor surface
type TemplateResponse struct {
	Type           string                 `json:"type"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Icon           string                 `json:"icon"`
	IsStatic       bool                   `json:"isStatic"`
	IsHero         bool                   `json:"isHero"`
	DefaultContent map[string]interface{} `json:"defaultContent"`
}

// ToSectionResponse converts a domain section to a response DTO
func ToSectionResponse(s *section.Section) SectionResponse {
	return SectionResponse{
		ID:        s.ID,
		Type:      s.Type,
		Order:     s.Order,
		Visible:   s.IsVisible(),
		IsHero:    s.IsHero(),
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSectionResponses converts a list of sections
func ToSectionResponses(sections []section.Section) []SectionResponse {
	out := make([]SectionResponse, len(sections))
	for i := range sections {
		out[i] = ToSectionResponse(&sections[i])
	}
	return out
}

// ToTemplateResponses lists the templates a surface offers
func ToTemplateResponses(surface section.Surface) []TemplateResponse {
	templates := section.TemplatesFor(surface)
	out := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = TemplateResponse{
			Type:           t.Type,
			Name:           t.Name,
			Description:    t.Description,
			Icon:           t.Icon,
			IsStatic:       t.IsStatic,
			IsHero:         t.IsHero,
			DefaultContent: t.DefaultContent(),
		}
	}
	return out
}
