// Package lru implements a classic move-to-front Least-Recently-Used
// replacement policy, directly grounded on
// IvanBrykalov-shardcache/policy/lru: admission pushes to the front, reads
// promote to the front, and the victim is always the tail.
package lru

import "github.com/cakecache/cake/policy"

type lruPolicy[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

// New constructs an LRU policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &lruPolicy[K, V]{}
}

func (p *lruPolicy[K, V]) Init(h policy.Hooks[K, V]) { p.h = h }

func (p *lruPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

func (p *lruPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	p.h.AddFirst(e)
	return true
}

func (p *lruPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	p.h.ReplaceNode(old, new)
	return new
}

func (p *lruPolicy[K, V]) Remove(e policy.Entry[K, V]) { p.h.Remove(e) }

// Touch promotes e to the most-recently-used position.
func (p *lruPolicy[K, V]) Touch(e policy.Entry[K, V]) { p.h.MoveFirst(e) }

// EvictNext removes the least-recently-used entry — the tail.
func (p *lruPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	return p.h.RemoveLast()
}

func (p *lruPolicy[K, V]) Clear() {}
