package orm

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/ecommerce/pkg/metrics"
	"gorm.io/gorm"
)

// SoftDeletable marks entities that carry the is_deleted flag. Repositories
// scope every default read to SoftDeleted() == false; entities without the
// flag (plain join rows) are never filtered.
type SoftDeletable interface {
	SoftDeleted() bool
}

const softDeleteColumn = "is_deleted"

// QueryOption tunes a single read: eager-loads, ordering, pagination, and
// the deleted-rows override.
type QueryOption func(*queryOptions)

type queryOptions struct {
	includes    []string
	orderBy     string
	page        int
	perPage     int
	withDeleted bool
}

// WithIncludes eager-loads the named relationship paths in the same read,
// e.g. WithIncludes("Items.Product", "User").
func WithIncludes(paths ...string) QueryOption {
	return func(o *queryOptions) { o.includes = append(o.includes, paths...) }
}

// OrderBy applies an ordering expression such as "created_at DESC". Without
// it the store's natural order is used.
func OrderBy(expr string) QueryOption {
	return func(o *queryOptions) { o.orderBy = expr }
}

// Paginate limits the read to one page (both arguments 1-based and ≥1).
func Paginate(page, perPage int) QueryOption {
	return func(o *queryOptions) {
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 1
		}
		o.page, o.perPage = page, perPage
	}
}

// WithDeleted disables the soft-delete scope for this read. Delete flows
// need it: a row must be found regardless of its current flag before it can
// be toggled or removed.
func WithDeleted() QueryOption {
	return func(o *queryOptions) { o.withDeleted = true }
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// Repository is the generic per-entity-type data access surface. Reads run
// immediately against the unit of work's session; Add/Update/Remove only
// stage mutations, which become durable when the owning UnitOfWork saves.
//
// A Repository is confined to the goroutine of the request that created its
// UnitOfWork; it is not safe for concurrent use.
type Repository[T any] struct {
	uow *UnitOfWork
}

func (r *Repository[T]) query(ctx context.Context, p Predicate, opts ...QueryOption) (*gorm.DB, *queryOptions) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	tx := r.uow.db.WithContext(ctx).Model(new(T))
	if _, soft := any(*new(T)).(SoftDeletable); soft && !o.withDeleted {
		tx = tx.Where(softDeleteColumn+" = ?", false)
	}
	tx = p.apply(tx)
	for _, path := range o.includes {
		tx = tx.Preload(path)
	}
	if o.orderBy != "" {
		tx = tx.Order(o.orderBy)
	}
	return tx, &o
}

// Get fetches a single entity by primary key, or nil when absent or
// soft-deleted. Zero matching rows is a normal outcome, not an error.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	return r.First(ctx, Eq("id", id))
}

// First returns the first entity matching the predicate, or nil. Options
// may eager-load relations or bypass the soft-delete scope.
func (r *Repository[T]) First(ctx context.Context, p Predicate, opts ...QueryOption) (*T, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	tx, _ := r.query(ctx, p, opts...)

	var rows []T
	if err := tx.Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("orm: first: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetAll returns every entity matching the predicate, honoring ordering,
// includes, and pagination options. An empty result is not an error.
func (r *Repository[T]) GetAll(ctx context.Context, p Predicate, opts ...QueryOption) ([]T, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	tx, o := r.query(ctx, p, opts...)
	if o.page > 0 {
		tx = tx.Offset((o.page - 1) * o.perPage).Limit(o.perPage)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("orm: get all: %w", err)
	}
	return rows, nil
}

// GetPage is GetAll plus the pagination metadata (total counts all matching
// rows, not just the returned page).
func (r *Repository[T]) GetPage(ctx context.Context, p Predicate, page, perPage int, opts ...QueryOption) ([]T, Pagination, error) {
	total, err := r.Count(ctx, p)
	if err != nil {
		return nil, Pagination{}, err
	}

	rows, err := r.GetAll(ctx, p, append(opts, Paginate(page, perPage))...)
	if err != nil {
		return nil, Pagination{}, err
	}
	return rows, Pagination{Page: page, PerPage: perPage, Total: total}, nil
}

// Count returns the number of matching non-deleted rows.
func (r *Repository[T]) Count(ctx context.Context, p Predicate) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	tx, _ := r.query(ctx, p)

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("orm: count: %w", err)
	}
	return n, nil
}

// Exists reports whether at least one non-deleted row matches the predicate.
func (r *Repository[T]) Exists(ctx context.Context, p Predicate) (bool, error) {
	n, err := r.Count(ctx, p)
	return n > 0, err
}

// Add stages an insert. Nothing is written until the UnitOfWork saves.
func (r *Repository[T]) Add(entities ...*T) {
	for _, e := range entities {
		r.uow.stage(mutationAdd, e)
	}
}

// Update stages a full-row update of an already-persisted entity.
func (r *Repository[T]) Update(entities ...*T) {
	for _, e := range entities {
		r.uow.stage(mutationUpdate, e)
	}
}

// Remove stages a hard delete. Soft deletion is an Update that sets the
// entity's deleted flag; Remove physically removes the row.
func (r *Repository[T]) Remove(entities ...*T) {
	for _, e := range entities {
		r.uow.stage(mutationRemove, e)
	}
}
