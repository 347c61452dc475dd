// Package clock implements the CLOCK (second-chance) replacement policy: a
// circular scan that clears reference bits as it sweeps, evicting the first
// entry it finds still unmarked. No pack repository ships CLOCK, so this is
// built from the standard second-chance algorithm rather than adapted from a
// specific file; it reuses the same policy.Hooks intrusive list that
// policy/lru and policy/fifo use, walking it with Hooks.Next instead of
// Hooks.MoveFirst.
package clock

import (
	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/policy"
)

// ref is the soft-dependency attribute holding each entry's reference bit.
var ref = attribute.NewBool("clock-ref", false, nil)

type clockPolicy[K comparable, V any] struct {
	h    policy.Hooks[K, V]
	hand policy.Entry[K, V]
}

// New constructs a CLOCK policy instance.
func New[K comparable, V any]() policy.Policy[K, V] {
	return &clockPolicy[K, V]{}
}

func (p *clockPolicy[K, V]) Init(h policy.Hooks[K, V]) { p.h = h }

func (p *clockPolicy[K, V]) Dependencies() []policy.AttrDep {
	return []policy.AttrDep{{Descriptor: ref, Hard: false}}
}

func (p *clockPolicy[K, V]) Add(e policy.Entry[K, V]) bool {
	p.h.AddLast(e)
	if p.hand == nil {
		p.hand = e
	}
	return true
}

func (p *clockPolicy[K, V]) Replace(old, new policy.Entry[K, V]) policy.Entry[K, V] {
	if p.hand == old {
		p.hand = new
	}
	p.h.ReplaceNode(old, new)
	return new
}

func (p *clockPolicy[K, V]) Remove(e policy.Entry[K, V]) {
	p.advanceHandPast(e)
	p.h.Remove(e)
}

// Touch sets e's reference bit, giving it a second chance during the next
// sweep that reaches it.
func (p *clockPolicy[K, V]) Touch(e policy.Entry[K, V]) {
	_ = attribute.Put(e.Attributes(), ref, true)
}

// EvictNext sweeps from the hand, clearing set reference bits, until it
// finds a clear one; that entry is the victim.
func (p *clockPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	if p.hand == nil {
		p.hand = p.h.Head()
	}
	if p.hand == nil {
		panic(policy.ErrEvictUnsupported)
	}

	for {
		cur := p.hand
		if !attribute.Get(cur.Attributes(), ref) {
			p.advanceHandPast(cur)
			p.h.Remove(cur)
			return cur
		}
		_ = attribute.Put(cur.Attributes(), ref, false)
		p.advanceHandPast(cur)
	}
}

// advanceHandPast moves the hand to the entry after cur, wrapping to the
// list head (which, after cur is eventually removed, becomes whatever
// follows it).
func (p *clockPolicy[K, V]) advanceHandPast(cur policy.Entry[K, V]) {
	next := p.h.Next(cur)
	if next == nil {
		next = p.h.Head()
		if next == cur {
			next = nil
		}
	}
	p.hand = next
}

func (p *clockPolicy[K, V]) Clear() { p.hand = nil }
