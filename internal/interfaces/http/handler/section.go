package handler

import (
	appsection "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/gin-gonic/gin"
)

// SectionHandler exposes the homepage section editor
type SectionHandler struct {
	BaseHandler
	sectionService *appsection.SectionService
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(sectionService *appsection.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// List returns every homepage section in display order, hidden ones included
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.sectionService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sections)
}

// Templates returns the catalog offered by the homepage editor
func (h *SectionHandler) Templates(c *gin.Context) {
	h.Success(c, h.sectionService.Templates())
}

// Add appends a section built from a catalog template
func (h *SectionHandler) Add(c *gin.Context) {
	var req appsection.AddSectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sec, err := h.sectionService.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sec)
}

// Reorder applies a drag-and-drop sequence atomically
func (h *SectionHandler) Reorder(c *gin.Context) {
	var req appsection.ReorderSectionsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sections, err := h.sectionService.Reorder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sections)
}

// ToggleVisibility flips whether the section renders on the public site
func (h *SectionHandler) ToggleVisibility(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sec, err := h.sectionService.ToggleVisibility(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// UpdateContent replaces the section content after validating it
func (h *SectionHandler) UpdateContent(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appsection.UpdateContentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sec, err := h.sectionService.UpdateContent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// Delete removes a section; the hero is rejected
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sectionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
