// Package fifo implements a First-In-First-Out replacement policy: the
// longest-resident entry is evicted first, and reads never change the
// order. Grounded on original_source's FIFOReplacementPolicy (add links to
// the front; evictNext removes the other end) adapted to the Hooks-based
// intrusive list IvanBrykalov-shardcache/policy/lru uses.
package fifo

import "github.com/cakecache/cake/policy"

type fifoPolicy[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

// New constructs a FIFO policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &fifoPolicy[K, V]{}
}

func (p *fifoPolicy[K, V]) Init(h policy.Hooks[K, V]) { p.h = h }

func (p *fifoPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

func (p *fifoPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	p.h.AddFirst(e)
	return true
}

func (p *fifoPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	p.h.ReplaceNode(old, new)
	return new
}

func (p *fifoPolicy[K, V]) Remove(e policy.Entry[K, V]) { p.h.Remove(e) }

// Touch is a no-op: FIFO order is fixed at insertion time.
func (p *fifoPolicy[K, V]) Touch(policy.Entry[K, V]) {}

// EvictNext removes the longest-resident entry — the tail, since Add always
// links new entries at the head.
func (p *fifoPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	return p.h.RemoveLast()
}

func (p *fifoPolicy[K, V]) Clear() {}
