package section

import (
	"time"

	"github.com/google/uuid"
)

// Section is a typed, ordered, independently visible content block.
// Homepage sections are stored one per row; landing pages and blog posts
// embed their sections as a JSON array, which is why Section carries json tags.
type Section struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	// Order is the position among siblings; gaps are allowed
	Order int `json:"order"`
	// Visible is nil for documents written before the flag existed
	Visible   *bool                  `json:"visible,omitempty"`
	Content   map[string]interface{} `json:"content"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// IsVisible treats an absent flag as visible
func (s *Section) IsVisible() bool {
	return s.Visible == nil || *s.Visible
}

// ToggleVisibility flips the visible flag and nothing else
func (s *Section) ToggleVisibility() {
	next := !s.IsVisible()
	s.Visible = &next
	s.UpdatedAt = time.Now()
}

// ReplaceContent validates the payload against the section type and stores it as given
func (s *Section) ReplaceContent(payload map[string]interface{}) error {
	if err := ValidateContent(s.Type, payload); err != nil {
		return err
	}
	s.Content = payload
	s.UpdatedAt = time.Now()
	return nil
}

// Template returns the catalog entry of the section type
func (s *Section) Template() (Template, bool) {
	return Lookup(s.Type)
}

// IsHero reports whether the section belongs to a hero template
func (s *Section) IsHero() bool {
	return IsHeroType(s.Type)
}

// CanDelete returns ErrHeroSectionUndeletable for hero sections
func (s *Section) CanDelete() error {
	if s.IsHero() {
		return ErrHeroSectionUndeletable
	}
	return nil
}

// Typed decodes the content into its typed variant
func (s *Section) Typed() (Content, error) {
	return Parse(s.Type, s.Content)
}

func boolPtr(b bool) *bool { return &b }
