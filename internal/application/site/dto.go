package site

import (
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ListQuery represents list query parameters of a flat collection
type ListQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a repository filter
func (q ListQuery) Filter() shared.Filter {
	f := shared.NewFilter(q.Page, q.PageSize, q.Search)
	// ordered collections keep their manual order unless asked otherwise
	f.OrderBy = q.OrderBy
	f.OrderDir = q.OrderDir
	return f
}

// ReorderRequest carries the manual sequence of entity ids
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=500"`
}

// SettingsResponse represents a singleton document
type SettingsResponse struct {
	Collection string                 `json:"collection"`
	ID         string                 `json:"id"`
	Data       map[string]interface{} `json:"data"`
}
