package models

import (
	"github.com/atedres/boldnet-sub000/internal/domain/submission"
)

// ContactSubmissionModel is the persistence model for contact form messages
type ContactSubmissionModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(120);not null"`
	Email   string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(40)"`
	Subject string `gorm:"type:varchar(200)"`
	Message string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ContactSubmissionModel) TableName() string {
	return submission.CollectionContact
}

// ToDomain converts the persistence model to a domain ContactSubmission
func (m *ContactSubmissionModel) ToDomain() *submission.ContactSubmission {
	return &submission.ContactSubmission{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Subject:    m.Subject,
		Message:    m.Message,
	}
}

// FromDomain populates the persistence model from a domain ContactSubmission
func (m *ContactSubmissionModel) FromDomain(c *submission.ContactSubmission) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Subject = c.Subject
	m.Message = c.Message
}

// QuoteRequestModel is the persistence model for quote requests
type QuoteRequestModel struct {
	BaseModel
	Name    string                 `gorm:"type:varchar(120);not null"`
	Email   string                 `gorm:"type:varchar(200);not null"`
	Phone   string                 `gorm:"type:varchar(40)"`
	Company string                 `gorm:"type:varchar(120)"`
	Service string                 `gorm:"type:varchar(160)"`
	Budget  string                 `gorm:"type:varchar(80)"`
	Message string                 `gorm:"type:text"`
	Status  submission.QuoteStatus `gorm:"type:varchar(20);not null;default:'new';index"`
}

// TableName returns the table name for GORM
func (QuoteRequestModel) TableName() string {
	return submission.CollectionQuote
}

// ToDomain converts the persistence model to a domain QuoteRequest
func (m *QuoteRequestModel) ToDomain() *submission.QuoteRequest {
	return &submission.QuoteRequest{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Company:    m.Company,
		Service:    m.Service,
		Budget:     m.Budget,
		Message:    m.Message,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain QuoteRequest
func (m *QuoteRequestModel) FromDomain(q *submission.QuoteRequest) {
	m.FromDomainBaseEntity(q.BaseEntity)
	m.Name = q.Name
	m.Email = q.Email
	m.Phone = q.Phone
	m.Company = q.Company
	m.Service = q.Service
	m.Budget = q.Budget
	m.Message = q.Message
	m.Status = q.Status
}
