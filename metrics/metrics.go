// Package metrics exposes the store's observability hook. Grounded on
// IvanBrykalov-shardcache/cache/metrics.go's Metrics interface, generalized
// from a fixed EvictReason enum (policy/ttl/capacity) to listener.Op since
// this store has no TTL concept of its own.
package metrics

import "github.com/cakecache/cake/listener"

// Stats receives store-level counters as mutations happen.
type Stats interface {
	Hit()
	Miss()
	Evict(op listener.Op)
	Size(entries int, volume int64)
}

// Noop discards every observation. It is the default when a store is
// constructed without a Stats collaborator.
type Noop struct{}

func (Noop) Hit()                           {}
func (Noop) Miss()                          {}
func (Noop) Evict(listener.Op)              {}
func (Noop) Size(entries int, volume int64) {}

var _ Stats = Noop{}
