package store

import "sort"

// collection is the canonical ordered owner of one record group. Views
// observe it through the version counter and never mutate it.
type collection[T any] struct {
	items   []T
	version uint64
}

func (c *collection[T]) bump() { c.version++ }

// FilteredView is a live, read-only projection of a collection under a
// predicate. It recomputes lazily: Items compares the source version
// (plus its own predicate generation) against the last recompute, so a
// view is always consistent with the canonical collection at read time
// without copying on every mutation.
type FilteredView[T any] struct {
	src     *collection[T]
	pred    func(T) bool
	predGen uint64
	seen    uint64
	cache   []T
}

// NewFilteredView creates a view over src with the given predicate.
// A nil predicate admits everything.
func NewFilteredView[T any](src *collection[T], pred func(T) bool) *FilteredView[T] {
	return &FilteredView[T]{src: src, pred: pred, seen: ^uint64(0)}
}

// SetPredicate replaces the predicate and invalidates the cache.
func (v *FilteredView[T]) SetPredicate(pred func(T) bool) {
	v.pred = pred
	v.predGen++
	v.seen = ^uint64(0)
}

func (v *FilteredView[T]) version() uint64 {
	return v.src.version + v.predGen
}

// Items returns the current projection, recomputing if the source or
// predicate changed since the last read.
func (v *FilteredView[T]) Items() []T {
	if v.seen == v.version() {
		return v.cache
	}
	out := make([]T, 0, len(v.src.items))
	for _, item := range v.src.items {
		if v.pred == nil || v.pred(item) {
			out = append(out, item)
		}
	}
	v.cache = out
	v.seen = v.version()
	return out
}

// SortedView is a live, read-only projection of a FilteredView under a
// comparator. It composes on the filtered view and shares its laziness.
type SortedView[T any] struct {
	src     *FilteredView[T]
	less    func(a, b T) bool
	lessGen uint64
	seen    uint64
	cache   []T
}

// NewSortedView creates a sorted view over a filtered view. A nil
// comparator preserves the source order.
func NewSortedView[T any](src *FilteredView[T], less func(a, b T) bool) *SortedView[T] {
	return &SortedView[T]{src: src, less: less, seen: ^uint64(0)}
}

// SetComparator replaces the comparator and invalidates the cache.
func (v *SortedView[T]) SetComparator(less func(a, b T) bool) {
	v.less = less
	v.lessGen++
	v.seen = ^uint64(0)
}

// Items returns the current sorted projection.
func (v *SortedView[T]) Items() []T {
	version := v.src.version() + v.lessGen
	if v.seen == version {
		return v.cache
	}
	items := v.src.Items()
	out := make([]T, len(items))
	copy(out, items)
	if v.less != nil {
		// Stable: equal records keep canonical order.
		sort.SliceStable(out, func(i, j int) bool { return v.less(out[i], out[j]) })
	}
	v.cache = out
	v.seen = version
	return out
}
