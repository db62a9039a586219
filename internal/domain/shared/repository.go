package shared

import "github.com/google/uuid"

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset for the filter page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// OrderAssignment is one element of a batch reorder: entity ID gets position Order
type OrderAssignment struct {
	ID    uuid.UUID
	Order int
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SequenceOrders turns an ordered list of ids into assignments where the id at
// position i gets order i. Repeated ids are rejected.
func SequenceOrders(ids []uuid.UUID) ([]OrderAssignment, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]OrderAssignment, 0, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrInvalidInput.WithMessage("id " + id.String() + " appears more than once")
		}
		seen[id] = struct{}{}
		out = append(out, OrderAssignment{ID: id, Order: i})
	}
	return out, nil
}

// MaxPageSize caps list requests
const MaxPageSize = 100

// NewFilter builds a filter from list query parameters, clamping page and size
func NewFilter(page, pageSize int, search string) Filter {
	f := DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = search
	return f
}
