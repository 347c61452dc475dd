// Package mru implements a Most-Recently-Used replacement policy: identical
// bookkeeping to policy/lru, but evictNext removes the head (the entry just
// touched or inserted) instead of the tail — spec §4.4's "like LRU but
// evictNext removes head".
package mru

import "github.com/cakecache/cake/policy"

type mruPolicy[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

// New constructs an MRU policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &mruPolicy[K, V]{}
}

func (p *mruPolicy[K, V]) Init(h policy.Hooks[K, V]) { p.h = h }

func (p *mruPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

func (p *mruPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	p.h.AddFirst(e)
	return true
}

func (p *mruPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	p.h.ReplaceNode(old, new)
	return new
}

func (p *mruPolicy[K, V]) Remove(e policy.Entry[K, V]) { p.h.Remove(e) }

func (p *mruPolicy[K, V]) Touch(e policy.Entry[K, V]) { p.h.MoveFirst(e) }

// EvictNext removes the most-recently-used entry — the head.
func (p *mruPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	return p.h.RemoveFirst()
}

func (p *mruPolicy[K, V]) Clear() {}
