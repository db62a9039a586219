package handler

import (
	"net/http"

	appsite "github.com/atedres/boldnet-sub000/internal/application/site"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CollectionHandler serves CRUD for one flat content collection
type CollectionHandler[T site.Entity] struct {
	BaseHandler
	service *appsite.CollectionService[T]
}

// NewCollectionHandler creates a handler over a collection service
func NewCollectionHandler[T site.Entity](service *appsite.CollectionService[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{service: service}
}

// List returns a paginated list of entities
func (h *CollectionHandler[T]) List(c *gin.Context) {
	var q appsite.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// Get returns one entity
func (h *CollectionHandler[T]) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entity)
}

// Create stores a new entity
func (h *CollectionHandler[T]) Create(c *gin.Context) {
	entity := h.service.New()
	if !h.bindJSON(c, entity) {
		return
	}
	created, err := h.service.Create(c.Request.Context(), entity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Update replaces an entity
func (h *CollectionHandler[T]) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entity := h.service.New()
	if !h.bindJSON(c, entity) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, entity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete removes an entity
func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// OrderedCollectionHandler adds batch reordering to a collection handler
type OrderedCollectionHandler[T site.Ordered] struct {
	*CollectionHandler[T]
	ordered *appsite.OrderedCollectionService[T]
}

// NewOrderedCollectionHandler creates a handler for a manually ordered collection
func NewOrderedCollectionHandler[T site.Ordered](service *appsite.OrderedCollectionService[T]) *OrderedCollectionHandler[T] {
	return &OrderedCollectionHandler[T]{
		CollectionHandler: NewCollectionHandler[T](service.CollectionService),
		ordered:           service,
	}
}

// Reorder applies a manual sequence atomically
func (h *OrderedCollectionHandler[T]) Reorder(c *gin.Context) {
	var req appsite.ReorderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	items, err := h.ordered.Reorder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
