// Package random implements a replacement policy with no ordering: the
// victim on eviction is chosen uniformly at random among resident entries.
// It keeps its own slice+index structure instead of the shared intrusive
// list (O(1) swap-remove beats walking a linked list for an arbitrary
// index), the same "ignore the shared Hooks list" shape
// IvanBrykalov-shardcache/policy/twoq uses for its own A1in bookkeeping.
package random

import (
	"math/rand"

	"github.com/cakecache/cake/policy"
)

type randomPolicy[K comparable, V any] struct {
	items []policy.Entry[K, V]
	index map[K]int
}

// New constructs a Random policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &randomPolicy[K, V]{index: make(map[K]int)}
}

func (p *randomPolicy[K, V]) Init(policy.Hooks[K, V]) {}

func (p *randomPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

func (p *randomPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	p.index[e.Key()] = len(p.items)
	p.items = append(p.items, e)
	return true
}

func (p *randomPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	if i, ok := p.index[old.Key()]; ok {
		p.items[i] = new
	}
	return new
}

func (p *randomPolicy[K, V]) Remove(e policy.Entry[K, V]) { p.removeAt(e.Key()) }

// Touch is a no-op: random eviction ignores recency and frequency.
func (p *randomPolicy[K, V]) Touch(policy.Entry[K, V]) {}

// EvictNext removes a uniformly random resident entry.
func (p *randomPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	if len(p.items) == 0 {
		panic(policy.ErrEvictUnsupported)
	}
	i := rand.Intn(len(p.items))
	e := p.items[i]
	p.removeAt(e.Key())
	return e
}

func (p *randomPolicy[K, V]) Clear() {
	p.items = nil
	p.index = make(map[K]int)
}

// removeAt swap-removes the entry for key in O(1), keeping index consistent.
func (p *randomPolicy[K, V]) removeAt(key K) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	last := len(p.items) - 1
	p.items[i] = p.items[last]
	p.index[p.items[i].Key()] = i
	p.items = p.items[:last]
	delete(p.index, key)
}
