package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CRUDService is implemented by every resource service. R is the response
// DTO, C and U the create and update requests.
type CRUDService[R any, C any, U any] interface {
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[R], error)
	GetByID(ctx context.Context, id uuid.UUID) (*R, error)
	Create(ctx context.Context, req C) (*R, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*R, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FilterKind tells how a filter query parameter is parsed
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterUUID
	FilterBool
	// FilterDate accepts YYYY-MM-DD or RFC 3339
	FilterDate
	// FilterDateEnd is FilterDate, with a plain YYYY-MM-DD moved to the last
	// instant of that day so "dateTo=2024-03-31" includes the 31st.
	FilterDateEnd
)

// FilterParam declares one resource filter. Name is the camelCase query
// parameter and repository filter key; the snake_case spelling is accepted
// as an alias.
type FilterParam struct {
	Name string
	Kind FilterKind
}

// CRUDHandler serves list/get/create/update/delete for one resource
type CRUDHandler[R any, C any, U any] struct {
	BaseHandler
	service CRUDService[R, C, U]
	filters []FilterParam
}

// NewCRUDHandler creates a CRUDHandler over service accepting filters
func NewCRUDHandler[R any, C any, U any](service CRUDService[R, C, U], filters ...FilterParam) *CRUDHandler[R, C, U] {
	return &CRUDHandler[R, C, U]{
		service: service,
		filters: filters,
	}
}

// List handles GET /<resource>
func (h *CRUDHandler[R, C, U]) List(c *gin.Context) {
	filter, ok := h.ParseFilter(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /<resource>/:id
func (h *CRUDHandler[R, C, U]) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create handles POST /<resource>
func (h *CRUDHandler[R, C, U]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /<resource>/:id
func (h *CRUDHandler[R, C, U]) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /<resource>/:id
func (h *CRUDHandler[R, C, U]) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, id)
}

// ParseFilter reads pagination, sorting, search and the handler's resource
// filters from the query string. It writes a 400 response and returns false
// when a filter value cannot be parsed.
func (h *CRUDHandler[R, C, U]) ParseFilter(c *gin.Context) (shared.Filter, bool) {
	return h.parseFilter(c, h.filters)
}

func (h *BaseHandler) parseFilter(c *gin.Context, params []FilterParam) (shared.Filter, bool) {
	filter, detail := parseListFilter(c, params)
	if detail != nil {
		h.FieldError(c, dto.ErrCodeValidation, detail.Message, detail.Field)
		return filter, false
	}
	return filter, true
}

func parseListFilter(c *gin.Context, params []FilterParam) (shared.Filter, *dto.ValidationDetail) {
	filter := shared.DefaultFilter()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	limit := c.Query("limit")
	if limit == "" {
		limit = c.Query("page_size")
	}
	if size, err := strconv.Atoi(limit); err == nil && size > 0 {
		filter.PageSize = size
	}
	if sortBy := strings.TrimSpace(c.Query("sort_by")); sortBy != "" {
		filter.OrderBy = sortBy
	}
	if strings.EqualFold(c.Query("sort_order"), "asc") {
		filter.OrderDir = "asc"
	}
	filter.Search = strings.TrimSpace(c.Query("search"))

	for _, p := range params {
		raw := queryValue(c, p.Name)
		if raw == "" {
			continue
		}
		value, err := parseFilterValue(raw, p.Kind)
		if err != nil {
			return filter, &dto.ValidationDetail{Field: p.Name, Message: fmt.Sprintf("%s %s", p.Name, err.Error())}
		}
		filter.Filters[p.Name] = value
	}

	return filter.Normalize(), nil
}

func queryValue(c *gin.Context, name string) string {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(snakeCase(name)))
}

func parseFilterValue(raw string, kind FilterKind) (any, error) {
	switch kind {
	case FilterUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("must be a valid UUID")
		}
		return id, nil
	case FilterBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("must be true or false")
		}
		return b, nil
	case FilterDate, FilterDateEnd:
		d, err := valueobject.ParseDate(raw)
		if err != nil {
			return nil, errors.New("must be a date (YYYY-MM-DD or RFC 3339)")
		}
		if kind == FilterDateEnd && len(raw) == len(time.DateOnly) {
			return d.Time.Add(24*time.Hour - time.Nanosecond), nil
		}
		return d.Time, nil
	default:
		return raw, nil
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
