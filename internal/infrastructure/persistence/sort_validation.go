package persistence

import (
	"strings"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to every table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PageSortFields contains allowed sort fields for landing pages, blog posts and coded pages
var PageSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"slug":         true,
	"visible":      true,
	"published_at": true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// TeamMemberSortFields contains allowed sort fields for team members
var TeamMemberSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sort_order": true,
	"name":       true,
	"role":       true,
}

// ServiceSortFields contains allowed sort fields for services
var ServiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"title":          true,
	"slug":           true,
	"starting_price": true,
}

// TestimonialSortFields contains allowed sort fields for testimonials
var TestimonialSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"author_name": true,
	"company":     true,
	"rating":      true,
}

// FunnelStepSortFields contains allowed sort fields for funnel steps
var FunnelStepSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"step":       true,
	"title":      true,
}

// PortfolioItemSortFields contains allowed sort fields for portfolio items
var PortfolioItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sort_order": true,
	"title":      true,
	"category":   true,
}

// SubmissionSortFields contains allowed sort fields for contact messages and quote requests
var SubmissionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

// listOptions describes how a table is searched, filtered and sorted
type listOptions struct {
	sortFields    map[string]bool
	defaultOrder  string
	searchColumns []string
	filterColumns map[string]bool
}

// applyFilter narrows a query by search text and whitelisted equality filters
func (o listOptions) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(o.searchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(o.searchColumns))
		args := make([]interface{}, 0, len(o.searchColumns))
		for _, col := range o.searchColumns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	for key, value := range filter.Filters {
		if o.filterColumns[key] {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

// applyOrder sorts by a whitelisted field, or by the table default
func (o listOptions) applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, o.sortFields, "")
	if field == "" {
		return query.Order(o.defaultOrder)
	}
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir)).Order("id ASC")
}

// applyPage limits the query to the filter page; a zero page size returns everything
func applyPage(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	return query
}
