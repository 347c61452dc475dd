package store

import (
	"github.com/cakecache/cake/entry"
	"github.com/cakecache/cake/policy"
)

// node is the store's intrusive list element. It embeds the public Entry so
// that Key/Value/Attributes are promoted for free, and carries the list
// pointers a policy's Hooks operate on. It is never exposed outside store;
// a policy only ever sees it through the policy.Entry/policy.Hooks
// interfaces, mirroring IvanBrykalov-shardcache/cache/node.go keeping
// prev/next as plain fields manipulated only via policy.Hooks.
type node[K comparable, V any] struct {
	*entry.Entry[K, V]
	next, prev *node[K, V]
}

func newNode[K comparable, V any](e *entry.Entry[K, V]) *node[K, V] {
	return &node[K, V]{Entry: e}
}

var _ policy.Entry[string, int] = (*node[string, int])(nil)

// storeHooks adapts a Store's shared intrusive list (listHead/listTail) to
// policy.Hooks. Policies that don't use the shared list (lfu, random) never
// call it.
type storeHooks[K comparable, V any] struct{ s *Store[K, V] }

func (h storeHooks[K, V]) asNode(e policy.Entry[K, V]) *node[K, V] {
	return e.(*node[K, V])
}

func (h storeHooks[K, V]) linkFirst(n *node[K, V]) {
	n.prev = nil
	n.next = h.s.listHead
	if h.s.listHead != nil {
		h.s.listHead.prev = n
	}
	h.s.listHead = n
	if h.s.listTail == nil {
		h.s.listTail = n
	}
}

func (h storeHooks[K, V]) linkLast(n *node[K, V]) {
	n.next = nil
	n.prev = h.s.listTail
	if h.s.listTail != nil {
		h.s.listTail.next = n
	}
	h.s.listTail = n
	if h.s.listHead == nil {
		h.s.listHead = n
	}
}

func (h storeHooks[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		h.s.listHead = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		h.s.listTail = n.prev
	}
	n.next, n.prev = nil, nil
}

func (h storeHooks[K, V]) AddFirst(e policy.Entry[K, V]) {
	h.linkFirst(h.asNode(e))
	h.s.listLen++
}

func (h storeHooks[K, V]) AddLast(e policy.Entry[K, V]) {
	h.linkLast(h.asNode(e))
	h.s.listLen++
}

func (h storeHooks[K, V]) MoveFirst(e policy.Entry[K, V]) {
	n := h.asNode(e)
	if h.s.listHead == n {
		return
	}
	h.unlink(n)
	h.linkFirst(n)
}

func (h storeHooks[K, V]) MoveLast(e policy.Entry[K, V]) {
	n := h.asNode(e)
	if h.s.listTail == n {
		return
	}
	h.unlink(n)
	h.linkLast(n)
}

func (h storeHooks[K, V]) RemoveFirst() policy.Entry[K, V] {
	n := h.s.listHead
	if n == nil {
		return nil
	}
	h.unlink(n)
	h.s.listLen--
	return n
}

func (h storeHooks[K, V]) RemoveLast() policy.Entry[K, V] {
	n := h.s.listTail
	if n == nil {
		return nil
	}
	h.unlink(n)
	h.s.listLen--
	return n
}

func (h storeHooks[K, V]) Remove(e policy.Entry[K, V]) {
	h.unlink(h.asNode(e))
	h.s.listLen--
}

// ReplaceNode transplants list pointers from old to new in O(1), per
// spec §4.3's "replace transplants pointers in O(1) without walking".
func (h storeHooks[K, V]) ReplaceNode(old, new policy.Entry[K, V]) {
	on := h.asNode(old)
	nn := h.asNode(new)
	nn.prev = on.prev
	nn.next = on.next
	if on.prev != nil {
		on.prev.next = nn
	} else {
		h.s.listHead = nn
	}
	if on.next != nil {
		on.next.prev = nn
	} else {
		h.s.listTail = nn
	}
	on.prev, on.next = nil, nil
}

func (h storeHooks[K, V]) Head() policy.Entry[K, V] {
	if h.s.listHead == nil {
		return nil
	}
	return h.s.listHead
}

func (h storeHooks[K, V]) Tail() policy.Entry[K, V] {
	if h.s.listTail == nil {
		return nil
	}
	return h.s.listTail
}

func (h storeHooks[K, V]) Next(e policy.Entry[K, V]) policy.Entry[K, V] {
	n := h.asNode(e).next
	if n == nil {
		return nil
	}
	return n
}

func (h storeHooks[K, V]) Prev(e policy.Entry[K, V]) policy.Entry[K, V] {
	p := h.asNode(e).prev
	if p == nil {
		return nil
	}
	return p
}

func (h storeHooks[K, V]) Len() int { return h.s.listLen }

var _ policy.Hooks[string, int] = storeHooks[string, int]{}
