package models

import (
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"gorm.io/datatypes"
)

// SingletonModel stores one settings document per collection
type SingletonModel struct {
	Collection string            `gorm:"type:varchar(60);primary_key"`
	DocID      string            `gorm:"column:doc_id;type:varchar(40);not null"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SingletonModel) TableName() string {
	return "site_singletons"
}

// ToDomain converts the persistence model to a domain Singleton
func (m *SingletonModel) ToDomain() *site.Singleton {
	data := map[string]interface{}(m.Data)
	if data == nil {
		data = map[string]interface{}{}
	}
	return &site.Singleton{
		Collection: m.Collection,
		ID:         m.DocID,
		Data:       data,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Singleton
func (m *SingletonModel) FromDomain(s *site.Singleton) {
	m.Collection = s.Collection
	m.DocID = s.ID
	m.Data = datatypes.JSONMap(s.Data)
	m.UpdatedAt = s.UpdatedAt
}
