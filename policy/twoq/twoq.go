// Package twoq adapts IvanBrykalov-shardcache/policy/twoq's 2Q policy (a
// scan-resistant variant with a probationary A1in queue, a ghost A1out
// queue of recently evicted keys, and a shared Am queue for entries that
// proved themselves) to the store's pull-based EvictNext contract.
//
// The teacher's OnAdd proposes an eviction as a side effect of admission;
// here Add always admits and EvictNext decides, on each call, whether A1in
// is over its configured share of capacity (evict its tail) or whether to
// fall back to the shared Am queue's tail. This is not a literal port: the
// eviction trigger moved from push (admission time) to pull (store-driven),
// which is the one structural change spec §4.3 forces on every list policy.
package twoq

import (
	"container/list"

	"github.com/cakecache/cake/policy"
)

type twoQPolicy[K comparable, V any] struct {
	h policy.Hooks[K, V]

	capIn    int
	capGhost int

	inList *list.List
	inIdx  map[K]*list.Element

	ghostList *list.List
	ghostIdx  map[K]*list.Element
}

// New constructs a 2Q policy instance bound to the given A1in and ghost
// capacities (absolute entry counts, not per-shard — there is no sharding
// here). Common choices: capIn ≈ 25% of the store's MaxSize, capGhost ≈
// 50-100% of MaxSize.
func New[K comparable, V any](capIn, capGhost int) policy.Policy[K, V] {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return &twoQPolicy[K, V]{
		capIn:     capIn,
		capGhost:  capGhost,
		inList:    list.New(),
		inIdx:     make(map[K]*list.Element),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}
}

func (p *twoQPolicy[K, V]) Init(h policy.Hooks[K, V]) { p.h = h }

func (p *twoQPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

// Add admits k into Am directly if it's a ghost (second chance), otherwise
// into A1in. Either way the entry joins the shared Am ordering too, so a
// plain EvictNext fallback always has a tail to evict.
func (p *twoQPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	k := e.Key()
	if ge, ok := p.ghostIdx[k]; ok {
		p.ghostList.Remove(ge)
		delete(p.ghostIdx, k)
		p.h.AddFirst(e)
		return true
	}
	p.h.AddFirst(e)
	p.inIdx[k] = p.inList.PushFront(e)
	return true
}

func (p *twoQPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	if el, ok := p.inIdx[old.Key()]; ok {
		el.Value = new
	}
	p.h.ReplaceNode(old, new)
	return new
}

func (p *twoQPolicy[K, V]) Remove(e policy.Entry[K, V]) {
	p.dropFromIn(e.Key())
	p.h.Remove(e)
}

// Touch promotes out of A1in into Am (the entry has proven itself), or just
// re-promotes within Am.
func (p *twoQPolicy[K, V]) Touch(e policy.Entry[K, V]) {
	p.dropFromIn(e.Key())
	p.h.MoveFirst(e)
}

// EvictNext evicts A1in's tail once A1in is over capIn, recording the key
// as a ghost; otherwise it evicts the shared Am tail.
func (p *twoQPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	if p.inList.Len() > p.capIn {
		el := p.inList.Back()
		e := el.Value.(policy.Entry[K, V])
		p.dropFromIn(e.Key())
		p.h.Remove(e)
		p.addGhost(e.Key())
		return e
	}
	e := p.h.RemoveLast()
	if e == nil {
		panic(policy.ErrEvictUnsupported)
	}
	p.dropFromIn(e.Key())
	return e
}

func (p *twoQPolicy[K, V]) Clear() {
	p.inList.Init()
	p.inIdx = make(map[K]*list.Element)
	p.ghostList.Init()
	p.ghostIdx = make(map[K]*list.Element)
}

func (p *twoQPolicy[K, V]) dropFromIn(k K) {
	if el, ok := p.inIdx[k]; ok {
		p.inList.Remove(el)
		delete(p.inIdx, k)
	}
}

func (p *twoQPolicy[K, V]) addGhost(k K) {
	if old, ok := p.ghostIdx[k]; ok {
		p.ghostList.Remove(old)
	}
	p.ghostIdx[k] = p.ghostList.PushFront(k)
	for p.ghostList.Len() > p.capGhost {
		tail := p.ghostList.Back()
		if tail == nil {
			break
		}
		delete(p.ghostIdx, tail.Value.(K))
		p.ghostList.Remove(tail)
	}
}
