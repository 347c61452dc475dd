package store

import (
	"github.com/cakecache/cake/entry"
	"github.com/cakecache/cake/exception"
	"github.com/cakecache/cake/listener"
	"github.com/cakecache/cake/loader"
	"github.com/cakecache/cake/metrics"
	"github.com/cakecache/cake/policy"
	"github.com/cakecache/cake/policy/lru"
)

// Options configures a Store. Zero values are safe; New applies defaults:
//   - nil Policy            => policy/lru
//   - nil AttributeService   => DefaultAttributeService
//   - nil ExceptionService   => exception.DefaultService
//   - nil Listener           => listener.NoopListener
//   - nil Metrics            => metrics.Noop
//   - nil Clock              => the system clock
//
// Grounded on IvanBrykalov-shardcache/cache/options.go's Options struct and
// cache.go's New defaulting, generalized from a sharded-cache's
// Capacity/Shards fields to this store's MaxSize/MaxVolume budgets — there
// is no sharding concept in the single-mutator core (spec.md §5 non-goal).
type Options[K comparable, V any] struct {
	// MaxSize is the entry-count budget. Must be positive; use
	// store.Unbounded for "no count limit".
	MaxSize int
	// MaxVolume is the Σ-Size(entry) budget. Must be positive; use
	// store.UnboundedVolume for "no volume limit".
	MaxVolume int64

	Policy           policy.Policy[K, V]
	AttributeService AttributeService[K, V]
	ExceptionService exception.Service[K, V]
	Listener         listener.Listener[K, V]
	Metrics          metrics.Stats
	Loader           loader.Func[K, V]
	Clock            Clock

	// IsCacheable, if set, is consulted before every admission. A panic
	// inside it is logged fatally (ExceptionService.Fatal) and treated as
	// false, per spec.md §7.
	IsCacheable func(*entry.Entry[K, V]) bool

	// Evictor, if set, replaces the default "evictNext until budgets hold"
	// trim loop.
	Evictor Evictor[K, V]

	// Disabled makes every Put a no-op that still reports previous, per
	// spec.md §8 scenario 4.
	Disabled bool
}

func (o *Options[K, V]) applyDefaults() {
	if o.Policy == nil {
		o.Policy = lru.New[K, V]()
	}
	if o.AttributeService == nil {
		o.AttributeService = NewDefaultAttributeService[K, V](o.Clock)
	}
	if o.ExceptionService == nil {
		o.ExceptionService = exception.NewDefaultService[K, V](nil)
	}
	if o.Listener == nil {
		o.Listener = listener.NoopListener[K, V]{}
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Noop{}
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
}
