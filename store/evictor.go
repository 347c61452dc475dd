package store

import "github.com/cakecache/cake/entry"

// Comparator orders two entries for a comparator-driven trim: it reports
// whether a sorts before b. Trims evict the prefix of the ascending sort.
type Comparator[K comparable, V any] func(a, b *entry.Entry[K, V]) bool

// EvictorView is the restricted surface a custom Evictor sees: current
// budgets and the two trim operations, nothing else. It cannot read or
// write individual entries, matching spec.md §4.5.1's "forbidding all other
// setters".
type EvictorView[K comparable, V any] interface {
	Size() int
	Volume() int64
	MaxSize() int
	MaxVolume() int64

	// TrimToSize evicts down to target resident entries (see
	// Store.TrimToSize for the sign convention) and returns what was
	// evicted.
	TrimToSize(target int, cmp Comparator[K, V]) []*entry.Entry[K, V]
	// TrimToVolume evicts down to target resident volume and returns what
	// was evicted.
	TrimToVolume(target int64, cmp Comparator[K, V]) []*entry.Entry[K, V]
}

// Evictor lets a caller replace the default "evictNext until budgets hold"
// trim loop with custom logic. If the evictor runs without shrinking the
// store at all, trim falls back to a single default evictNext() to
// guarantee progress.
type Evictor[K comparable, V any] interface {
	Evict(view EvictorView[K, V])
}
