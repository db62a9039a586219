package handler

import (
	appsite "github.com/atedres/boldnet-sub000/internal/application/site"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/gin-gonic/gin"
)

// settingsRoutes maps URL names to singleton collections
var settingsRoutes = map[string]string{
	"theme":             site.SingletonTheme,
	"footer":            site.SingletonFooter,
	"site":              site.SingletonSite,
	"personal-branding": site.SingletonPersonalBranding,
	"hero":              site.SingletonHero,
}

// SettingsHandler serves the singleton configuration documents
type SettingsHandler struct {
	BaseHandler
	settingsService *appsite.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *appsite.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// collectionFor resolves the :name parameter; unknown names fall through to
// the service, which rejects them.
func collectionFor(c *gin.Context) string {
	name := c.Param("name")
	if collection, ok := settingsRoutes[name]; ok {
		return collection
	}
	return name
}

// Get returns a settings document, empty if never written
func (h *SettingsHandler) Get(c *gin.Context) {
	doc, err := h.settingsService.Get(c.Request.Context(), collectionFor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Patch deep-merges the body into the settings document
func (h *SettingsHandler) Patch(c *gin.Context) {
	var patch map[string]interface{}
	if !h.bindJSON(c, &patch) {
		return
	}
	doc, err := h.settingsService.Patch(c.Request.Context(), collectionFor(c), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}
