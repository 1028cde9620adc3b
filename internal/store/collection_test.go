package store

import (
	"errors"
	"reflect"
	"testing"
)

type row struct {
	ID     string
	Parent string
	Name   string
	Order  int
}

func newRowCollection() *Collection[row] {
	return newCollection(collectionConfig[row]{
		name:  "rows",
		id:    func(r row) string { return r.ID },
		scope: func(r row) Scope { return ForParent(r.Parent) },
		less:  func(a, b row) bool { return a.Order < b.Order },
		valid: func(r row) bool { return r.ID != "" && r.Name != "" },
	})
}

func slicePtr[T any](s []T) uintptr {
	return reflect.ValueOf(s).Pointer()
}

func TestCollection_FetchLifecycle(t *testing.T) {
	c := newRowCollection()
	scope := ForParent("5")

	seq := c.beginFetch(scope)
	if !c.Loading(scope) {
		t.Fatalf("expected loading during fetch")
	}

	ok := c.completeFetch(scope, seq, []row{
		{ID: "2", Parent: "5", Name: "Second", Order: 2},
		{ID: "1", Parent: "5", Name: "First", Order: 1},
	})
	if !ok {
		t.Fatalf("expected completion to apply")
	}
	if c.Loading(scope) {
		t.Fatalf("expected loading cleared after completion")
	}
	if c.Err(scope) != "" {
		t.Fatalf("unexpected error: %q", c.Err(scope))
	}

	got := c.ByScope(scope)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("expected sorted rows [1 2], got %+v", got)
	}
}

func TestCollection_StaleResponseDiscarded(t *testing.T) {
	c := newRowCollection()
	scope := ForParent("5")

	first := c.beginFetch(scope)
	second := c.beginFetch(scope)

	if !c.completeFetch(scope, second, []row{{ID: "new", Parent: "5", Name: "New"}}) {
		t.Fatalf("expected newest fetch to apply")
	}
	if c.completeFetch(scope, first, []row{{ID: "old", Parent: "5", Name: "Old"}}) {
		t.Fatalf("expected stale fetch to be discarded")
	}

	got := c.ByScope(scope)
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("stale response clobbered fresh data: %+v", got)
	}

	if c.failFetch(scope, first, errors.New("late failure")) {
		t.Fatalf("expected stale failure to be discarded")
	}
	if c.Err(scope) != "" {
		t.Fatalf("stale failure recorded an error: %q", c.Err(scope))
	}
}

func TestCollection_FailureKeepsStaleData(t *testing.T) {
	c := newRowCollection()
	scope := ForParent("5")

	seq := c.beginFetch(scope)
	c.completeFetch(scope, seq, []row{{ID: "1", Parent: "5", Name: "Kept"}})

	seq = c.beginFetch(scope)
	if c.Err(scope) != "" {
		t.Fatalf("beginFetch should clear the previous error")
	}
	c.failFetch(scope, seq, errors.New("boom"))

	if c.Err(scope) != "boom" {
		t.Fatalf("expected recorded error, got %q", c.Err(scope))
	}
	if got := c.ByScope(scope); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("failure dropped the stale list: %+v", got)
	}
}

func TestCollection_EmptyScopeReferenceIsStable(t *testing.T) {
	c := newRowCollection()

	a := c.ByScope(ForParent("missing"))
	b := c.ByScope(ForParent("missing"))
	if len(a) != 0 || len(b) != 0 {
		t.Fatalf("expected empty views")
	}
	if slicePtr(a) != slicePtr(b) {
		t.Fatalf("empty views must share one backing slice")
	}
}

func TestCollection_AllExcludesUnscopedList(t *testing.T) {
	c := newRowCollection()

	seq := c.beginFetch(ForParent("1"))
	c.completeFetch(ForParent("1"), seq, []row{{ID: "a", Parent: "1", Name: "A"}})
	seq = c.beginFetch(ForParent("2"))
	c.completeFetch(ForParent("2"), seq, []row{{ID: "b", Parent: "2", Name: "B"}})
	seq = c.beginFetch(AllScope())
	c.completeFetch(AllScope(), seq, []row{
		{ID: "a", Parent: "1", Name: "A"},
		{ID: "b", Parent: "2", Name: "B"},
	})

	if got := c.All(); len(got) != 2 {
		t.Fatalf("All must flatten parent scopes only, got %d rows", len(got))
	}
}

func TestCollection_AllMemoizedUntilMutation(t *testing.T) {
	c := newRowCollection()

	seq := c.beginFetch(ForParent("1"))
	c.completeFetch(ForParent("1"), seq, []row{{ID: "a", Parent: "1", Name: "A"}})

	first := c.All()
	second := c.All()
	if slicePtr(first) != slicePtr(second) {
		t.Fatalf("All must return the memoized slice while nothing changed")
	}

	c.insert(row{ID: "b", Parent: "1", Name: "B", Order: 2})
	third := c.All()
	if len(third) != 2 {
		t.Fatalf("expected rebuild after mutation, got %+v", third)
	}
}

func TestCollection_InvalidRowsFilteredFromView(t *testing.T) {
	c := newRowCollection()
	scope := ForParent("1")

	seq := c.beginFetch(scope)
	c.completeFetch(scope, seq, []row{
		{ID: "a", Parent: "1", Name: "A"},
		{ID: "", Parent: "1", Name: "ghost"},
	})

	got := c.ByScope(scope)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected invalid row filtered, got %+v", got)
	}
}

func TestCollection_ApplyResortsAndRemoveIsIdempotent(t *testing.T) {
	c := newRowCollection()
	scope := ForParent("1")

	seq := c.beginFetch(scope)
	c.completeFetch(scope, seq, []row{
		{ID: "a", Parent: "1", Name: "A", Order: 1},
		{ID: "b", Parent: "1", Name: "B", Order: 2},
	})

	if !c.apply("a", func(r row) row { r.Order = 3; return r }) {
		t.Fatalf("apply missed a cached row")
	}
	if got := c.ByScope(scope); got[0].ID != "b" {
		t.Fatalf("expected resort after apply, got %+v", got)
	}

	if !c.remove("a") {
		t.Fatalf("remove missed a cached row")
	}
	if c.remove("a") {
		t.Fatalf("second remove should be a no-op")
	}
	if got := c.ByScope(scope); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected rows after remove: %+v", got)
	}
}
