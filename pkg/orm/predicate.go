// Package orm provides the generic data-access core: a small predicate
// algebra, a generic Repository[T], and a UnitOfWork that commits staged
// mutations atomically.
//
// Usage:
//
//	uow := orm.New(database.DB)
//	orders := orm.RepositoryFor[models.Order](uow)
//
//	pending, err := orders.GetAll(ctx,
//	    orm.And(orm.Eq("user_id", userID), orm.Eq("status", "Pending")),
//	    orm.OrderBy("created_at DESC"),
//	    orm.WithIncludes("Items"),
//	)
//
//	orders.Add(&order)
//	affected, err := uow.Save(ctx)
package orm

import "gorm.io/gorm"

type predicateKind int

const (
	predicateAll predicateKind = iota
	predicateEq
	predicateGte
	predicateLte
	predicateBetween
	predicateAnd
)

// Predicate is a boolean condition over an entity's columns. Predicates are
// built from the constructors below and lowered to conjunctive SQL by the
// repository; there is deliberately no OR, sub-query, or raw-SQL escape
// hatch. Column names come from code, never from user input.
type Predicate struct {
	kind   predicateKind
	column string
	args   []any
	sub    []Predicate
}

// All is the identity predicate: it matches every row (soft-delete scoping
// still applies at the repository boundary).
func All() Predicate {
	return Predicate{kind: predicateAll}
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Predicate {
	return Predicate{kind: predicateEq, column: column, args: []any{value}}
}

// Gte matches rows where column >= value.
func Gte(column string, value any) Predicate {
	return Predicate{kind: predicateGte, column: column, args: []any{value}}
}

// Lte matches rows where column <= value.
func Lte(column string, value any) Predicate {
	return Predicate{kind: predicateLte, column: column, args: []any{value}}
}

// Between matches rows where lo <= column <= hi (both bounds inclusive).
func Between(column string, lo, hi any) Predicate {
	return Predicate{kind: predicateBetween, column: column, args: []any{lo, hi}}
}

// And intersects the given predicates. Identity predicates are skipped, so
// folding optional criteria into And(All(), c1, c2, ...) composes cleanly:
// an all-absent criteria set degenerates back to All. The result is
// independent of argument order.
func And(predicates ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(predicates))
	for _, p := range predicates {
		if p.kind == predicateAll {
			continue
		}
		kept = append(kept, p)
	}
	switch len(kept) {
	case 0:
		return All()
	case 1:
		return kept[0]
	}
	return Predicate{kind: predicateAnd, sub: kept}
}

// IsAll reports whether the predicate is the identity (matches everything).
func (p Predicate) IsAll() bool {
	return p.kind == predicateAll
}

// apply lowers the predicate onto a gorm query. Chained Where calls AND
// their conditions, which matches the algebra's conjunctive semantics.
func (p Predicate) apply(tx *gorm.DB) *gorm.DB {
	switch p.kind {
	case predicateAll:
		return tx
	case predicateEq:
		return tx.Where(p.column+" = ?", p.args[0])
	case predicateGte:
		return tx.Where(p.column+" >= ?", p.args[0])
	case predicateLte:
		return tx.Where(p.column+" <= ?", p.args[0])
	case predicateBetween:
		return tx.Where(p.column+" >= ? AND "+p.column+" <= ?", p.args[0], p.args[1])
	case predicateAnd:
		for _, s := range p.sub {
			tx = s.apply(tx)
		}
		return tx
	}
	return tx
}
