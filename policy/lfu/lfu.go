// Package lfu implements a Least-Frequently-Used replacement policy using
// the classic O(1) frequency-bucket algorithm: entries sharing a hit count
// live in the same bucket, ordered by insertion; evictNext always pops from
// the lowest non-empty bucket. Directly grounded on bjaus-stash/policy.go's
// lfuEvictor, adapted from raw keys to policy.Entry and from a bespoke
// evictor interface to the store's Policy contract.
package lfu

import (
	"container/list"

	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/policy"
)

// hits is the hard-dependency attribute holding each entry's frequency
// count. Hard because lfuPolicy relies on it being present and correct for
// every entry it manages.
var hits = attribute.NewInt64("lfu-hits", 0, func(v int64) bool { return v >= 0 })

type lfuPolicy[K comparable, V any] struct {
	freqs   map[int64]*list.List
	elems   map[K]*list.Element
	minFreq int64
}

// New constructs an LFU policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &lfuPolicy[K, V]{
		freqs: make(map[int64]*list.List),
		elems: make(map[K]*list.Element),
	}
}

// Init is a no-op: LFU keeps its own frequency buckets and never uses the
// store's shared intrusive list.
func (p *lfuPolicy[K, V]) Init(policy.Hooks[K, V]) {}

func (p *lfuPolicy[K, V]) Dependencies() []policy.AttrDep {
	return []policy.AttrDep{{Descriptor: hits, Hard: true}}
}

func (p *lfuPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	_ = attribute.Put(e.Attributes(), hits, 1)
	p.linkInto(1, e)
	p.minFreq = 1
	return true
}

func (p *lfuPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	freq := attribute.Get(old.Attributes(), hits)
	p.unlink(old.Key(), freq)
	_ = attribute.Put(new.Attributes(), hits, freq)
	p.linkInto(freq, new)
	return new
}

func (p *lfuPolicy[K, V]) Remove(e policy.Entry[K, V]) {
	freq := attribute.Get(e.Attributes(), hits)
	p.unlink(e.Key(), freq)
	if freq == p.minFreq {
		p.recomputeMinFreq()
	}
}

// Touch increments e's frequency and moves it into the next bucket up.
func (p *lfuPolicy[K, V]) Touch(e policy.Entry[K, V]) {
	oldFreq := attribute.Get(e.Attributes(), hits)
	p.unlink(e.Key(), oldFreq)
	newFreq := oldFreq + 1
	_ = attribute.Put(e.Attributes(), hits, newFreq)
	p.linkInto(newFreq, e)
	if oldFreq == p.minFreq {
		if b, ok := p.freqs[p.minFreq]; !ok || b.Len() == 0 {
			p.minFreq = newFreq
		}
	}
}

// EvictNext evicts the oldest entry in the lowest-frequency non-empty
// bucket: ties within a bucket break in insertion order, oldest first.
func (p *lfuPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	b, ok := p.freqs[p.minFreq]
	if !ok || b.Len() == 0 {
		panic(policy.ErrEvictUnsupported)
	}
	back := b.Back()
	e := back.Value.(policy.Entry[K, V])
	b.Remove(back)
	delete(p.elems, e.Key())
	if b.Len() == 0 {
		delete(p.freqs, p.minFreq)
		p.recomputeMinFreq()
	}
	return e
}

func (p *lfuPolicy[K, V]) Clear() {
	p.freqs = make(map[int64]*list.List)
	p.elems = make(map[K]*list.Element)
	p.minFreq = 0
}

// recomputeMinFreq scans for the lowest populated bucket after a Remove or
// EvictNext has (possibly) emptied the bucket at minFreq. Unlike Touch, which
// only ever moves an entry exactly one bucket up, these can empty a bucket
// and leave a gap, so the next minimum can't be assumed to be minFreq+1.
func (p *lfuPolicy[K, V]) recomputeMinFreq() {
	if b, ok := p.freqs[p.minFreq]; ok && b.Len() > 0 {
		return
	}
	var (
		min   int64
		found bool
	)
	for f := range p.freqs {
		if !found || f < min {
			min = f
			found = true
		}
	}
	if found {
		p.minFreq = min
	} else {
		p.minFreq = 0
	}
}

func (p *lfuPolicy[K, V]) linkInto(freq int64, e policy.Entry[K, V]) {
	b, ok := p.freqs[freq]
	if !ok {
		b = list.New()
		p.freqs[freq] = b
	}
	p.elems[e.Key()] = b.PushFront(e)
}

func (p *lfuPolicy[K, V]) unlink(key K, freq int64) {
	b, ok := p.freqs[freq]
	if !ok {
		return
	}
	if el, ok := p.elems[key]; ok {
		b.Remove(el)
		delete(p.elems, key)
	}
	if b.Len() == 0 {
		delete(p.freqs, freq)
	}
}
