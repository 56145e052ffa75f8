package shared

import (
	"context"
	"maps"

	"github.com/google/uuid"
)

// Repository is the storage contract shared by every aggregate
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsBy reports whether a row has column field equal to value,
	// ignoring the row excludeID when it is non-nil.
	ExistsBy(ctx context.Context, field string, value any, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Normalize clamps page to at least 1 and page size to 1..MaxPageSize,
// using DefaultPageSize when it is unset.
func (f Filter) Normalize() Filter {
	f.Page = max(f.Page, 1)
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	f.PageSize = min(f.PageSize, MaxPageSize)
	if f.Filters == nil {
		f.Filters = map[string]any{}
	}
	return f
}

// With returns a copy of f with filter key set; f itself is not modified.
func (f Filter) With(key string, value any) Filter {
	filters := maps.Clone(f.Filters)
	if filters == nil {
		filters = map[string]any{}
	}
	filters[key] = value
	f.Filters = filters
	return f
}

func (f Filter) Offset() int {
	return max(f.Page-1, 0) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// NewPaginated wraps one page of items. Items is never nil so it encodes as [].
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	p := Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
	if p.Items == nil {
		p.Items = []T{}
	}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}
