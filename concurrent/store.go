// Package concurrent adds a lock and singleflight-coalesced loading on top
// of store.Store, which is itself single-mutator only (spec.md §5). This is
// additive, not a replacement for the core contract: store.Store remains
// the thing to reach for when the caller already serializes access.
//
// Grounded on IvanBrykalov-shardcache/cache/shard.go's per-shard
// sync.RWMutex + padded hit/miss/evict counters, collapsed from many shards
// to the single store.Store this module's core provides (spec.md §5's
// explicit single-mutator non-goal rules out resurrecting sharding here).
package concurrent

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/entry"
	"github.com/cakecache/cake/internal/util"
	"github.com/cakecache/cake/store"
)

// Store makes a store.Store safe for concurrent use by serializing every
// call on a single lock, and coalesces concurrent GetOrLoad misses for the
// same key so the loader runs at most once per key at a time.
type Store[K comparable, V any] struct {
	mu sync.Mutex
	s  *store.Store[K, V]
	sf singleflight.Group

	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
}

// New constructs a concurrent Store around a fresh store.Store built from
// opts.
func New[K comparable, V any](opts store.Options[K, V]) (*Store[K, V], error) {
	s, err := store.New[K, V](opts)
	if err != nil {
		return nil, err
	}
	return &Store[K, V]{s: s}, nil
}

// Put inserts or updates key under the lock.
func (c *Store[K, V]) Put(key K, value V, attrs *attribute.Map) (previous, newEntry *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Put(key, value, attrs)
}

// PutIfAbsent inserts key only if absent, under the lock.
func (c *Store[K, V]) PutIfAbsent(key K, value V, attrs *attribute.Map) (previous, newEntry *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.PutIfAbsent(key, value, attrs)
}

// PutAll applies every item under a single lock acquisition.
func (c *Store[K, V]) PutAll(items []store.KV[K, V]) ([]store.PutResult[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.PutAll(items)
}

// Get looks up key under the lock, bumping the local hit/miss counters
// alongside whatever Options.Metrics already records.
func (c *Store[K, V]) Get(key K) (*entry.Entry[K, V], error) {
	c.mu.Lock()
	e, err := c.s.Get(key)
	c.mu.Unlock()
	if err == nil {
		if e != nil {
			c.hits.Add(1)
		} else {
			c.misses.Add(1)
		}
	}
	return e, err
}

// Peek looks up key under the lock without touching attributes or policy
// order.
func (c *Store[K, V]) Peek(key K) (*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Peek(key)
}

// Remove deletes key under the lock.
func (c *Store[K, V]) Remove(key K) (*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Remove(key)
}

// RemoveValue deletes key under the lock, only if its current value
// equals value per eq.
func (c *Store[K, V]) RemoveValue(key K, value V, eq func(a, b V) bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.RemoveValue(key, value, eq)
}

// RemoveAll deletes every key in keys under a single lock acquisition.
func (c *Store[K, V]) RemoveAll(keys []K) ([]*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.RemoveAll(keys)
}

// Clear empties the store under the lock.
func (c *Store[K, V]) Clear() ([]*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Clear()
}

// Replace performs the compare-and-swap under the lock.
func (c *Store[K, V]) Replace(key K, old *V, eq func(a, b V) bool, newValue V, attrs *attribute.Map) (retained bool, current *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Replace(key, old, eq, newValue, attrs)
}

// TrimToSize trims under the lock.
func (c *Store[K, V]) TrimToSize(target int, cmp store.Comparator[K, V]) ([]*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.TrimToSize(target, cmp)
}

// TrimToVolume trims under the lock.
func (c *Store[K, V]) TrimToVolume(target int64, cmp store.Comparator[K, V]) ([]*entry.Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.TrimToVolume(target, cmp)
}

// Len reports the resident entry count under the lock.
func (c *Store[K, V]) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Len()
}

// Volume reports the resident volume under the lock.
func (c *Store[K, V]) Volume() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Volume()
}

// Shutdown rejects future mutations; Peek/Len/Volume remain callable.
func (c *Store[K, V]) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Shutdown()
}

// Terminate ends the store's lifecycle entirely.
func (c *Store[K, V]) Terminate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Terminate()
}

// HitMiss returns the wrapper's own hit/miss counters, independent of
// whatever store.Options.Metrics collaborator was configured.
func (c *Store[K, V]) HitMiss() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// GetOrLoad returns key's entry, coalescing concurrent misses for the same
// key into a single Loader invocation via singleflight — multiple
// goroutines calling GetOrLoad(k) during a slow load all observe the one
// result, rather than each running the loader and racing to Put.
func (c *Store[K, V]) GetOrLoad(ctx context.Context, key K, attrs *attribute.Map) (*entry.Entry[K, V], error) {
	if e, err := c.Get(key); err != nil || e != nil {
		return e, err
	}

	v, err, _ := c.sf.Do(loadKey(key), func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.s.GetOrLoad(ctx, key, attrs)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry.Entry[K, V]), nil
}

// loadKey renders key as a singleflight group key. golang.org/x/sync's
// Group indexes by string, so a non-string K needs a stable textual form;
// %v is adequate for the comparable key types this module targets.
func loadKey[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
