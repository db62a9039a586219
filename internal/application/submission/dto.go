package submission

import (
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/submission"
	"github.com/google/uuid"
)

// ContactRequest represents a public contact form post
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" binding:"max=40"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
	// Website is a honeypot field; humans leave it empty
	Website string `json:"website"`
}

// QuoteRequestInput represents a public quote form post
type QuoteRequestInput struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" binding:"max=40"`
	Company string `json:"company" binding:"max=120"`
	Service string `json:"service" binding:"max=160"`
	Budget  string `json:"budget" binding:"max=80"`
	Message string `json:"message" binding:"max=5000"`
	Website string `json:"website"`
}

// ListQuery represents submission list parameters
type ListQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=new contacted"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ContactResponse represents a contact submission
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuoteResponse represents a quote request
type QuoteResponse struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone,omitempty"`
	Company   string                 `json:"company,omitempty"`
	Service   string                 `json:"service,omitempty"`
	Budget    string                 `json:"budget,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Status    submission.QuoteStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Receipt is returned to public form posters
type Receipt struct {
	ID         uuid.UUID `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func toContactResponse(c *submission.ContactSubmission) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func toQuoteResponse(q *submission.QuoteRequest) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Company:   q.Company,
		Service:   q.Service,
		Budget:    q.Budget,
		Message:   q.Message,
		Status:    q.Status,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
