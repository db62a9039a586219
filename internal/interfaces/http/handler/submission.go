package handler

import (
	"net/http"

	appsubmission "github.com/atedres/boldnet-sub000/internal/application/submission"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SubmissionHandler serves the public forms and their admin inbox
type SubmissionHandler struct {
	BaseHandler
	submissionService *appsubmission.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *appsubmission.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmitContact stores a public contact form post
func (h *SubmissionHandler) SubmitContact(c *gin.Context) {
	var req appsubmission.ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	receipt, err := h.submissionService.SubmitContact(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// SubmitQuote stores a public quote request
func (h *SubmissionHandler) SubmitQuote(c *gin.Context) {
	var req appsubmission.QuoteRequestInput
	if !h.bindJSON(c, &req) {
		return
	}
	receipt, err := h.submissionService.SubmitQuote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// ListContacts returns contact submissions, newest first
func (h *SubmissionHandler) ListContacts(c *gin.Context) {
	var q appsubmission.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.submissionService.ListContacts(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// GetContact returns one contact submission
func (h *SubmissionHandler) GetContact(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	contact, err := h.submissionService.GetContact(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContact removes a contact submission
func (h *SubmissionHandler) DeleteContact(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.submissionService.DeleteContact(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListQuotes returns quote requests, newest first
func (h *SubmissionHandler) ListQuotes(c *gin.Context) {
	var q appsubmission.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.submissionService.ListQuotes(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// GetQuote returns one quote request
func (h *SubmissionHandler) GetQuote(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	quote, err := h.submissionService.GetQuote(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// ToggleQuoteStatus flips a quote request between new and contacted
func (h *SubmissionHandler) ToggleQuoteStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	quote, err := h.submissionService.ToggleQuoteStatus(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// DeleteQuote removes a quote request
func (h *SubmissionHandler) DeleteQuote(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.submissionService.DeleteQuote(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
