package handler

import (
	"net/http"

	apppage "github.com/atedres/boldnet-sub000/internal/application/page"
	appsection "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PageHandler serves one page kind: landing pages, blog posts or coded pages
type PageHandler struct {
	BaseHandler
	pageService *apppage.PageService
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService *apppage.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// List returns a paginated list of pages
func (h *PageHandler) List(c *gin.Context) {
	var q apppage.ListPagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.pageService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// Templates returns the section catalog offered by this page kind
func (h *PageHandler) Templates(c *gin.Context) {
	h.Success(c, h.pageService.Templates())
}

// Get returns a page with its sections
func (h *PageHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.pageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create creates a page
func (h *PageHandler) Create(c *gin.Context) {
	var req apppage.CreatePageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.pageService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update applies a partial update to a page
func (h *PageHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req apppage.UpdatePageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.pageService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete removes a page and its sections
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pageService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddSection appends a section to the page
func (h *PageHandler) AddSection(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appsection.AddSectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sec, err := h.pageService.AddSection(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sec)
}

// ReorderSections reorders the page's sections atomically
func (h *PageHandler) ReorderSections(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appsection.ReorderSectionsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.pageService.ReorderSections(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// ToggleSectionVisibility flips one section of the page
func (h *PageHandler) ToggleSectionVisibility(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sid, ok := h.pathID(c, "sid")
	if !ok {
		return
	}
	sec, err := h.pageService.ToggleSectionVisibility(c.Request.Context(), id, sid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// UpdateSectionContent replaces the content of one section of the page
func (h *PageHandler) UpdateSectionContent(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sid, ok := h.pathID(c, "sid")
	if !ok {
		return
	}
	var req appsection.UpdateContentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sec, err := h.pageService.UpdateSectionContent(c.Request.Context(), id, sid, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// DeleteSection removes one section of the page
func (h *PageHandler) DeleteSection(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sid, ok := h.pathID(c, "sid")
	if !ok {
		return
	}
	if err := h.pageService.DeleteSection(c.Request.Context(), id, sid); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
