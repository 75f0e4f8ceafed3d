package orm_test

import (
	"testing"

	"github.com/shashiranjanraj/ecommerce/pkg/orm"
)

func TestAllIsIdentity(t *testing.T) {
	if !orm.All().IsAll() {
		t.Error("All() must report IsAll")
	}
	if orm.Eq("name", "x").IsAll() {
		t.Error("Eq must not report IsAll")
	}
	if orm.Between("price", 1, 10).IsAll() {
		t.Error("Between must not report IsAll")
	}
}

func TestAndSkipsIdentity(t *testing.T) {
	if !orm.And().IsAll() {
		t.Error("empty And must degenerate to All")
	}
	if !orm.And(orm.All(), orm.All()).IsAll() {
		t.Error("And of identities must degenerate to All")
	}
	if orm.And(orm.All(), orm.Eq("status", "Pending")).IsAll() {
		t.Error("And with one real condition must not be identity")
	}
}

func TestAndComposesOptionalCriteria(t *testing.T) {
	// The service-layer pattern: start from All, conditionally append.
	criteria := []orm.Predicate{orm.All()}

	status := "" // absent filter
	if status != "" {
		criteria = append(criteria, orm.Eq("status", status))
	}

	if !orm.And(criteria...).IsAll() {
		t.Error("all-absent criteria must compose to the identity")
	}

	criteria = append(criteria, orm.Eq("city", "Pune"))
	if orm.And(criteria...).IsAll() {
		t.Error("one present criterion must produce a real predicate")
	}
}
