package submission

import (
	"context"
	"strings"
	"time"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/submission"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Form kinds recorded in metrics
const (
	FormContact = "contact"
	FormQuote   = "quote"
)

// SubmissionService stores public form posts and serves them to admins
type SubmissionService struct {
	contacts  submission.ContactRepository
	quotes    submission.QuoteRepository
	announcer *event.Announcer
	metrics   *telemetry.ContentMetrics
	logger    *zap.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	contacts submission.ContactRepository,
	quotes submission.QuoteRepository,
	announcer *event.Announcer,
	metrics *telemetry.ContentMetrics,
	logger *zap.Logger,
) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if announcer == nil {
		announcer = event.NewAnnouncer(nil, nil, logger)
	}
	return &SubmissionService{
		contacts:  contacts,
		quotes:    quotes,
		announcer: announcer,
		metrics:   metrics,
		logger:    logger,
	}
}

// SubmitContact stores a contact message. Posts with the honeypot field set
// get a receipt but are not stored.
func (s *SubmissionService) SubmitContact(ctx context.Context, req ContactRequest) (*Receipt, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "submission", "submit_contact")
	defer span.End()

	if strings.TrimSpace(req.Website) != "" {
		s.logger.Info("Dropped contact submission caught by honeypot")
		return &Receipt{ID: uuid.New(), ReceivedAt: time.Now()}, nil
	}

	c, err := submission.NewContactSubmission(req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordSubmission(ctx, FormContact)
	s.logger.Info("Contact submission received", zap.String("submission_id", c.ID.String()))
	s.announcer.Announce(ctx, submission.CollectionContact, c.ID, shared.ActionCreated)
	return &Receipt{ID: c.ID, ReceivedAt: c.CreatedAt}, nil
}

// SubmitQuote stores a quote request in status new
func (s *SubmissionService) SubmitQuote(ctx context.Context, req QuoteRequestInput) (*Receipt, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "submission", "submit_quote")
	defer span.End()

	if strings.TrimSpace(req.Website) != "" {
		s.logger.Info("Dropped quote request caught by honeypot")
		return &Receipt{ID: uuid.New(), ReceivedAt: time.Now()}, nil
	}

	q, err := submission.NewQuoteRequest(submission.QuoteRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Service: strings.TrimSpace(req.Service),
		Budget:  strings.TrimSpace(req.Budget),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		return nil, err
	}
	if err := s.quotes.Create(ctx, q); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordSubmission(ctx, FormQuote)
	s.logger.Info("Quote request received",
		zap.String("submission_id", q.ID.String()),
		zap.String("service", q.Service))
	s.announcer.Announce(ctx, submission.CollectionQuote, q.ID, shared.ActionCreated)
	return &Receipt{ID: q.ID, ReceivedAt: q.CreatedAt}, nil
}

// ListContacts returns contact submissions, newest first
func (s *SubmissionService) ListContacts(ctx context.Context, q ListQuery) (*shared.Paginated[ContactResponse], error) {
	filter := shared.NewFilter(q.Page, q.PageSize, strings.TrimSpace(q.Search))
	items, err := s.contacts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contacts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ContactResponse, len(items))
	for i := range items {
		out[i] = toContactResponse(&items[i])
	}
	result := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListQuotes returns quote requests, newest first, optionally by status
func (s *SubmissionService) ListQuotes(ctx context.Context, q ListQuery) (*shared.Paginated[QuoteResponse], error) {
	filter := shared.NewFilter(q.Page, q.PageSize, strings.TrimSpace(q.Search))
	if q.Status != "" {
		filter.Filters["status"] = q.Status
	}
	items, err := s.quotes.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.quotes.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]QuoteResponse, len(items))
	for i := range items {
		out[i] = toQuoteResponse(&items[i])
	}
	result := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetContact returns one contact submission
func (s *SubmissionService) GetContact(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// GetQuote returns one quote request
func (s *SubmissionService) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(q)
	return &resp, nil
}

// ToggleQuoteStatus flips a quote request between new and contacted
func (s *SubmissionService) ToggleQuoteStatus(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "submission", "toggle_quote_status", telemetry.SpanAttrEntityID, id.String())
	defer span.End()

	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q.ToggleStatus()
	if err := s.quotes.UpdateStatus(ctx, q.ID, q.Status); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.Announce(ctx, submission.CollectionQuote, q.ID, shared.ActionUpdated)
	resp := toQuoteResponse(q)
	return &resp, nil
}

// DeleteContact removes a contact submission
func (s *SubmissionService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.announcer.Announce(ctx, submission.CollectionContact, id, shared.ActionDeleted)
	return nil
}

// DeleteQuote removes a quote request
func (s *SubmissionService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		return err
	}
	s.announcer.Announce(ctx, submission.CollectionQuote, id, shared.ActionDeleted)
	return nil
}
