package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// modelPointer is satisfied by *M when the model converts to and from D
type modelPointer[M any, D any] interface {
	*M
	ToDomain() *D
	FromDomain(*D)
}

// QueryOptions describes how a list query maps onto the table
type QueryOptions struct {
	// SearchColumns are matched case-insensitively against Filter.Search
	SearchColumns []string
	// FilterColumns maps a filter key to a column ("bankId": "bank_id") or to
	// a full condition with one placeholder ("dateFrom": "transaction_date >= ?")
	FilterColumns map[string]string
	// SortFields lists the columns accepted as OrderBy besides id and the timestamps
	SortFields []string
	// DefaultSort is used when OrderBy is empty or not whitelisted
	DefaultSort string
}

// GormRepository implements shared.Repository[D] for a GORM model M
type GormRepository[D any, M any, PM modelPointer[M, D]] struct {
	db   *gorm.DB
	opts QueryOptions
}

// NewGormRepository creates a repository for model M with the given list options
func NewGormRepository[D any, M any, PM modelPointer[M, D]](db *gorm.DB, opts QueryOptions) *GormRepository[D, M, PM] {
	if opts.DefaultSort == "" {
		opts.DefaultSort = "created_at"
	}
	opts.SortFields = append(slices.Clone(alwaysSortable), opts.SortFields...)
	return &GormRepository[D, M, PM]{db: db, opts: opts}
}

// DB returns the underlying connection for queries the generic methods do not cover
func (r *GormRepository[D, M, PM]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// FindByID finds a record by its ID
func (r *GormRepository[D, M, PM]) FindByID(ctx context.Context, id uuid.UUID) (*D, error) {
	var model M
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return PM(&model).ToDomain(), nil
}

// FindOneBy finds the first record whose column equals value
func (r *GormRepository[D, M, PM]) FindOneBy(ctx context.Context, column string, value any) (*D, error) {
	var model M
	if err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return PM(&model).ToDomain(), nil
}

// FindAll returns one page of records matching the filter
func (r *GormRepository[D, M, PM]) FindAll(ctx context.Context, filter shared.Filter) ([]D, error) {
	filter = filter.Normalize()

	var rows []M
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(M)), filter)
	query = query.Order(r.orderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)

	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", translateError(err))
	}

	items := make([]D, len(rows))
	for i := range rows {
		items[i] = *PM(&rows[i]).ToDomain()
	}
	return items, nil
}

// Count returns the number of records matching the filter, ignoring pagination
func (r *GormRepository[D, M, PM]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(M)), filter.Normalize())
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count records: %w", translateError(err))
	}
	return total, nil
}

// ExistsByID reports whether a record with the ID exists
func (r *GormRepository[D, M, PM]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check record exists: %w", translateError(err))
	}
	return count > 0, nil
}

// ExistsBy reports whether a record has column equal to value, ignoring excludeID
func (r *GormRepository[D, M, PM]) ExistsBy(ctx context.Context, column string, value any, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(new(M)).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s exists: %w", column, translateError(err))
	}
	return count > 0, nil
}

// Save creates or updates a record
func (r *GormRepository[D, M, PM]) Save(ctx context.Context, entity *D) error {
	var model M
	PM(&model).FromDomain(entity)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes a record by ID
func (r *GormRepository[D, M, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyFilter adds the search and filter conditions. Unknown filter keys are ignored.
func (r *GormRepository[D, M, PM]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(r.opts.SearchColumns) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		conds := make([]string, len(r.opts.SearchColumns))
		args := make([]any, len(r.opts.SearchColumns))
		for i, col := range r.opts.SearchColumns {
			conds[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
			args[i] = pattern
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	keys := make([]string, 0, len(filter.Filters))
	for k := range filter.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expr, ok := r.opts.FilterColumns[key]
		value := filter.Filters[key]
		if !ok || value == nil {
			continue
		}
		if strings.Contains(expr, "?") {
			query = query.Where(expr, value)
		} else {
			query = query.Where(clause.Eq{Column: clause.Column{Name: expr}, Value: value})
		}
	}
	return query
}

func (r *GormRepository[D, M, PM]) orderClause(filter shared.Filter) clause.OrderByColumn {
	return sortOrder(filter.OrderBy, filter.OrderDir, r.opts.SortFields, r.opts.DefaultSort)
}

// translateError maps GORM errors onto domain errors. TranslateError must be
// enabled on the connection for duplicate and foreign key errors to be recognised.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError(shared.CodeInvalidInput, "Referenced record does not exist")
	default:
		return err
	}
}
