package orm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/shashiranjanraj/ecommerce/pkg/metrics"
	"gorm.io/gorm"
)

// ErrSaveIncomplete is returned by Save when the commit reported fewer
// affected rows than mutations were staged. The transaction itself
// succeeded, but the caller must treat the result as a persistence failure
// and surface it; this layer never retries.
var ErrSaveIncomplete = errors.New("orm: save affected fewer rows than staged")

type mutationKind int

const (
	mutationAdd mutationKind = iota
	mutationUpdate
	mutationRemove
)

type mutation struct {
	kind   mutationKind
	entity any
}

// UnitOfWork binds one transactional session to the repositories obtained
// from it and commits their staged mutations as one atomic unit. Create one
// per logical request, thread it explicitly through calls, and discard it
// after Save. Discarding without saving abandons every staged mutation.
//
// A UnitOfWork is confined to a single goroutine.
type UnitOfWork struct {
	db      *gorm.DB
	repos   map[reflect.Type]any
	pending []mutation
}

// New creates a UnitOfWork over the given database handle.
func New(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:    db,
		repos: make(map[reflect.Type]any),
	}
}

// RepositoryFor returns the UnitOfWork's repository for entity type T. The
// instance is memoized per type, so services sharing one UnitOfWork observe
// the same pending-change set.
//
// This is a package-level function because Go methods cannot introduce type
// parameters.
func RepositoryFor[T any](u *UnitOfWork) *Repository[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if r, ok := u.repos[key]; ok {
		return r.(*Repository[T])
	}

	r := &Repository[T]{uow: u}
	u.repos[key] = r
	return r
}

func (u *UnitOfWork) stage(kind mutationKind, entity any) {
	u.pending = append(u.pending, mutation{kind: kind, entity: entity})
}

// Pending reports how many mutations are currently staged.
func (u *UnitOfWork) Pending() int {
	return len(u.pending)
}

// Save flushes every staged mutation, across all repositories obtained from
// this UnitOfWork, in one database transaction. It returns the number of
// rows the store reported as affected; a count below the number of staged
// mutations comes back with ErrSaveIncomplete. Staged mutations are cleared
// whether or not the commit succeeds.
func (u *UnitOfWork) Save(ctx context.Context) (int64, error) {
	staged := len(u.pending)
	if staged == 0 {
		return 0, nil
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range u.pending {
			var res *gorm.DB
			switch m.kind {
			case mutationAdd:
				start := time.Now()
				res = tx.Create(m.entity)
				metrics.ObserveDBQuery("insert", start)
			case mutationUpdate:
				start := time.Now()
				res = tx.Save(m.entity)
				metrics.ObserveDBQuery("update", start)
			case mutationRemove:
				start := time.Now()
				res = tx.Delete(m.entity)
				metrics.ObserveDBQuery("delete", start)
			}
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})

	u.pending = u.pending[:0]

	if err != nil {
		return 0, fmt.Errorf("orm: save: %w", err)
	}
	if affected < int64(staged) {
		return affected, ErrSaveIncomplete
	}
	return affected, nil
}
