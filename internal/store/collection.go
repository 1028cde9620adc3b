package store

import (
	"sort"
	"sync"
)

const allScopeKey = "*"

// collectionConfig describes one entity type's cache behavior. less is
// optional: collections without it preserve API order. valid is
// optional: collections with it drop malformed entities from selector
// output, but only when a scan actually finds one.
type collectionConfig[T any] struct {
	name  string
	id    func(T) string
	scope func(T) Scope
	less  func(a, b T) bool
	valid func(T) bool
}

// Collection is one normalized cache slice: ordered entity lists keyed
// by scope, with per-scope loading and error bookkeeping. Fetches are
// guarded by a per-scope monotonic sequence so a response that lost the
// race to a newer fetch for the same scope is discarded instead of
// clobbering fresher data.
type Collection[T any] struct {
	mu  sync.RWMutex
	cfg collectionConfig[T]

	itemsByScope map[string][]T
	loading      map[string]struct{}
	errByScope   map[string]string
	issuedSeq    map[string]uint64

	version      uint64
	flatAll      []T
	flatVersion  uint64
	flatBuilt    bool
	empty        []T
}

func newCollection[T any](cfg collectionConfig[T]) *Collection[T] {
	return &Collection[T]{
		cfg:          cfg,
		itemsByScope: make(map[string][]T),
		loading:      make(map[string]struct{}),
		errByScope:   make(map[string]string),
		issuedSeq:    make(map[string]uint64),
		empty:        make([]T, 0),
	}
}

// ByScope returns the scope's cached list. Unknown or empty scopes get
// the same shared empty slice every time, so memoizing consumers see a
// stable reference. When the config defines validity, invalid entities
// are filtered out of the returned view, but only if the scan finds at
// least one.
func (c *Collection[T]) ByScope(scope Scope) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.itemsByScope[scope.key()]
	if !ok || len(items) == 0 {
		return c.empty
	}
	if c.cfg.valid == nil {
		return items
	}

	clean := true
	for _, item := range items {
		if !c.cfg.valid(item) {
			clean = false
			break
		}
	}
	if clean {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.cfg.valid(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) Loading(scope Scope) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.loading[scope.key()]
	return ok
}

// Err returns the scope's last fetch failure message, empty when the
// last fetch succeeded or none ran yet.
func (c *Collection[T]) Err(scope Scope) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.errByScope[scope.key()]
}

// All flattens every per-parent scope into one list, memoized until the
// next cache mutation. The unscoped fetch result (the all scope) is
// intentionally excluded: resources with a real unscoped endpoint serve
// "all" views through ByScope(AllScope()) instead, and including both
// would double-count.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flatBuilt && c.flatVersion == c.version {
		return c.flatAll
	}

	keys := make([]string, 0, len(c.itemsByScope))
	for key := range c.itemsByScope {
		if key == allScopeKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]T, 0)
	for _, key := range keys {
		out = append(out, c.itemsByScope[key]...)
	}
	if len(out) == 0 {
		out = c.empty
	}

	c.flatAll = out
	c.flatVersion = c.version
	c.flatBuilt = true
	return out
}

func (c *Collection[T]) GetByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, items := range c.itemsByScope {
		for _, item := range items {
			if c.cfg.id(item) == id {
				return item, true
			}
		}
	}

	var zero T
	return zero, false
}

// beginFetch marks the scope loading (idempotent for overlapping
// fetches), clears the previous error, and issues the sequence number
// that gates this fetch's completion.
func (c *Collection[T]) beginFetch(scope Scope) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := scope.key()
	seq := c.issuedSeq[key] + 1
	c.issuedSeq[key] = seq
	c.loading[key] = struct{}{}
	delete(c.errByScope, key)
	return seq
}

// completeFetch replaces the scope's list with the fetched one. It
// reports false, leaving the cache untouched, when a newer fetch for
// the scope was issued after this one started.
func (c *Collection[T]) completeFetch(scope Scope, seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := scope.key()
	if c.issuedSeq[key] != seq {
		return false
	}

	c.itemsByScope[key] = c.sorted(items)
	delete(c.loading, key)
	delete(c.errByScope, key)
	c.version++
	return true
}

// failFetch records the failure. The previously cached list stays
// available (stale-but-available). Stale failures are ignored.
func (c *Collection[T]) failFetch(scope Scope, seq uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := scope.key()
	if c.issuedSeq[key] != seq {
		return false
	}

	delete(c.loading, key)
	c.errByScope[key] = err.Error()
	return true
}

// insert appends the entity to its owning scope, starting the scope's
// list if needed, and restores the sort invariant.
func (c *Collection[T]) insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.cfg.scope(item).key()
	list := append([]T(nil), c.itemsByScope[key]...)
	list = append(list, item)
	c.itemsByScope[key] = c.sortedInPlace(list)
	c.version++
}

// apply merges a mutation into the cached entity with the given id,
// wherever it lives. Returns false when the id is not cached.
func (c *Collection[T]) apply(id string, merge func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, items := range c.itemsByScope {
		for idx, item := range items {
			if c.cfg.id(item) != id {
				continue
			}
			list := append([]T(nil), items...)
			list[idx] = merge(item)
			c.itemsByScope[key] = c.sortedInPlace(list)
			c.version++
			return true
		}
	}
	return false
}

// remove filters the entity out of its scope. Removing an absent id is
// a no-op, so deletes are idempotent.
func (c *Collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, items := range c.itemsByScope {
		for idx, item := range items {
			if c.cfg.id(item) != id {
				continue
			}
			list := make([]T, 0, len(items)-1)
			list = append(list, items[:idx]...)
			list = append(list, items[idx+1:]...)
			c.itemsByScope[key] = list
			c.version++
			return true
		}
	}
	return false
}

func (c *Collection[T]) sorted(items []T) []T {
	list := append([]T(nil), items...)
	return c.sortedInPlace(list)
}

func (c *Collection[T]) sortedInPlace(list []T) []T {
	if c.cfg.less != nil {
		sort.SliceStable(list, func(i, j int) bool { return c.cfg.less(list[i], list[j]) })
	}
	return list
}
