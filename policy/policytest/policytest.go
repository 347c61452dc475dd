// Package policytest provides a minimal policy.Entry and policy.Hooks
// implementation so that each concrete policy package can be exercised in
// isolation, without spinning up a real store.
package policytest

import (
	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/policy"
)

// Entry is a standalone policy.Entry for tests.
type Entry[K comparable, V any] struct {
	key   K
	value V
	Attrs *attribute.Map
}

// NewEntry constructs a test Entry with a fresh, mutable attribute map.
func NewEntry[K comparable, V any](key K, value V) *Entry[K, V] {
	return &Entry[K, V]{key: key, value: value, Attrs: attribute.NewMap()}
}

func (e *Entry[K, V]) Key() K                      { return e.key }
func (e *Entry[K, V]) Value() V                    { return e.value }
func (e *Entry[K, V]) Attributes() *attribute.Map { return e.Attrs }

// Hooks is an unoptimized slice-backed doubly linked list that satisfies
// policy.Hooks for tests. Real O(1) behavior is exercised by store tests;
// this only needs to be correct, not fast.
type Hooks[K comparable, V any] struct {
	order []policy.Entry[K, V]
}

func (h *Hooks[K, V]) indexOf(e policy.Entry[K, V]) int {
	for i, x := range h.order {
		if x == e {
			return i
		}
	}
	return -1
}

func (h *Hooks[K, V]) AddFirst(e policy.Entry[K, V]) {
	h.order = append([]policy.Entry[K, V]{e}, h.order...)
}
func (h *Hooks[K, V]) AddLast(e policy.Entry[K, V]) { h.order = append(h.order, e) }
func (h *Hooks[K, V]) MoveFirst(e policy.Entry[K, V]) {
	h.Remove(e)
	h.AddFirst(e)
}
func (h *Hooks[K, V]) MoveLast(e policy.Entry[K, V]) {
	h.Remove(e)
	h.AddLast(e)
}
func (h *Hooks[K, V]) RemoveFirst() policy.Entry[K, V] {
	if len(h.order) == 0 {
		return nil
	}
	e := h.order[0]
	h.order = h.order[1:]
	return e
}
func (h *Hooks[K, V]) RemoveLast() policy.Entry[K, V] {
	if len(h.order) == 0 {
		return nil
	}
	e := h.order[len(h.order)-1]
	h.order = h.order[:len(h.order)-1]
	return e
}
func (h *Hooks[K, V]) Remove(e policy.Entry[K, V]) {
	if i := h.indexOf(e); i >= 0 {
		h.order = append(h.order[:i], h.order[i+1:]...)
	}
}
func (h *Hooks[K, V]) ReplaceNode(old, new policy.Entry[K, V]) {
	if i := h.indexOf(old); i >= 0 {
		h.order[i] = new
	}
}
func (h *Hooks[K, V]) Head() policy.Entry[K, V] {
	if len(h.order) == 0 {
		return nil
	}
	return h.order[0]
}
func (h *Hooks[K, V]) Tail() policy.Entry[K, V] {
	if len(h.order) == 0 {
		return nil
	}
	return h.order[len(h.order)-1]
}
func (h *Hooks[K, V]) Next(e policy.Entry[K, V]) policy.Entry[K, V] {
	i := h.indexOf(e)
	if i < 0 || i+1 >= len(h.order) {
		return nil
	}
	return h.order[i+1]
}
func (h *Hooks[K, V]) Prev(e policy.Entry[K, V]) policy.Entry[K, V] {
	i := h.indexOf(e)
	if i <= 0 {
		return nil
	}
	return h.order[i-1]
}
func (h *Hooks[K, V]) Len() int { return len(h.order) }
