package models

import (
	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"gorm.io/datatypes"
)

// SectionModel is the persistence model for a homepage section
type SectionModel struct {
	BaseModel
	Type      string            `gorm:"type:varchar(60);not null;index"`
	SortOrder int               `gorm:"column:sort_order;not null;default:0;index"`
	Visible   *bool             `gorm:"column:visible"`
	Content   datatypes.JSONMap `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (SectionModel) TableName() string {
	return "sections"
}

// ToDomain converts the persistence model to a domain Section
func (m *SectionModel) ToDomain() *section.Section {
	content := map[string]interface{}(m.Content)
	if content == nil {
		content = map[string]interface{}{}
	}
	return &section.Section{
		ID:        m.ID,
		Type:      m.Type,
		Order:     m.SortOrder,
		Visible:   m.Visible,
		Content:   content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Section
func (m *SectionModel) FromDomain(s *section.Section) {
	m.ID = s.ID
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
	m.Type = s.Type
	m.SortOrder = s.Order
	m.Visible = s.Visible
	m.Content = datatypes.JSONMap(s.Content)
}

// SectionModelFromDomain creates a new persistence model from a domain Section
func SectionModelFromDomain(s *section.Section) *SectionModel {
	m := &SectionModel{}
	m.FromDomain(s)
	return m
}
