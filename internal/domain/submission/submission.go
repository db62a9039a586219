package submission

import (
	"context"
	"strings"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Collection names
const (
	CollectionContact = "contact_form_submissions"
	CollectionQuote   = "quote_requests"
)

// QuoteStatus tracks whether someone followed up on a quote request
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusContacted QuoteStatus = "contacted"
)

// ContactSubmission is a message sent through the public contact form
type ContactSubmission struct {
	shared.BaseEntity
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=200"`
	Phone   string `json:"phone" validate:"max=40"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// NewContactSubmission validates and stamps a contact message
func NewContactSubmission(name, email, phone, subject, message string) (*ContactSubmission, error) {
	c := &ContactSubmission{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		Subject:    strings.TrimSpace(subject),
		Message:    strings.TrimSpace(message),
	}
	if err := shared.ValidateStruct(c); err != nil {
		return nil, err
	}
	return c, nil
}

// QuoteRequest is a request for a price proposal
type QuoteRequest struct {
	shared.BaseEntity
	Name    string      `json:"name" validate:"required,max=120"`
	Email   string      `json:"email" validate:"required,email,max=200"`
	Phone   string      `json:"phone" validate:"max=40"`
	Company string      `json:"company" validate:"max=120"`
	Service string      `json:"service" validate:"max=160"`
	Budget  string      `json:"budget" validate:"max=80"`
	Message string      `json:"message" validate:"max=5000"`
	Status  QuoteStatus `json:"status"`
}

// NewQuoteRequest validates a quote request; it starts in status new
func NewQuoteRequest(q QuoteRequest) (*QuoteRequest, error) {
	q.BaseEntity = shared.NewBaseEntity()
	q.Name = strings.TrimSpace(q.Name)
	q.Email = strings.TrimSpace(q.Email)
	q.Status = QuoteStatusNew
	if err := shared.ValidateStruct(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ToggleStatus flips between new and contacted
func (q *QuoteRequest) ToggleStatus() {
	if q.Status == QuoteStatusContacted {
		q.Status = QuoteStatusNew
	} else {
		q.Status = QuoteStatusContacted
	}
	q.Touch()
}

// ContactRepository persists contact submissions; records are never edited
type ContactRepository interface {
	Create(ctx context.Context, c *ContactSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*ContactSubmission, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ContactSubmission, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteRepository persists quote requests; only the status changes after creation
type QuoteRepository interface {
	Create(ctx context.Context, q *QuoteRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*QuoteRequest, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]QuoteRequest, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status QuoteStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
