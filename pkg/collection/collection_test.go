package collection_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/ecommerce/pkg/collection"
)

func TestMapFilter(t *testing.T) {
	upper := collection.Map([]string{"a", "b"}, strings.ToUpper)
	if len(upper) != 2 || upper[0] != "A" || upper[1] != "B" {
		t.Errorf("Map gave %v", upper)
	}

	even := collection.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	if len(even) != 2 || even[0] != 2 || even[1] != 4 {
		t.Errorf("Filter gave %v", even)
	}
}

func TestFirstAndContains(t *testing.T) {
	v, ok := collection.First([]int{5, 6, 7}, func(n int) bool { return n > 5 })
	if !ok || v != 6 {
		t.Errorf("First gave %v, %v", v, ok)
	}
	if _, ok := collection.First([]int{5}, func(n int) bool { return n > 5 }); ok {
		t.Error("First must report a miss")
	}
	if !collection.Contains([]string{"x", "y"}, func(s string) bool { return s == "y" }) {
		t.Error("Contains missed an element")
	}
}

func TestGroupByUniqueReduce(t *testing.T) {
	groups := collection.GroupBy([]int{1, 2, 3, 4}, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})
	if len(groups["even"]) != 2 || len(groups["odd"]) != 2 {
		t.Errorf("GroupBy gave %v", groups)
	}

	uniq := collection.Unique([]int{1, 1, 2, 2, 3})
	if len(uniq) != 3 {
		t.Errorf("Unique gave %v", uniq)
	}

	sum := collection.Reduce([]int{1, 2, 3}, 0, func(acc, n int) int { return acc + n })
	if sum != 6 {
		t.Errorf("Reduce gave %d", sum)
	}
}
