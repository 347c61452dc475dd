// Package policy defines the replacement-policy contract that the store
// (package store) drives on every mutation, plus the intrusive-list Hooks a
// policy uses to manipulate the store's shared ordering in O(1).
//
// The shape generalizes IvanBrykalov-shardcache's policy package (a
// per-shard Node/Hooks/Policy factory triad) from "propose an eviction on
// add" to the pull-based admit/replace/remove/touch/evictNext/clear
// contract the store needs: EvictNext is called exactly when the store must
// shrink, rather than being a side effect of Add.
package policy

import "github.com/cakecache/cake/attribute"

// Entry is the minimal read-only view of a cache entry a policy needs.
// The store's internal node type implements this; policies never see the
// store's unexported fields directly.
type Entry[K comparable, V any] interface {
	Key() K
	Value() V
	Attributes() *attribute.Map
}

// AttrDep is one attribute a policy depends on, declared via Dependencies
// before the store starts. The store registers hard dependencies with its
// AttributeService's DependOnHard and soft ones with DependOnSoft; the
// default AttributeService only records the registration (rejecting a
// descriptor registered twice) and does not write either kind of slot, so
// the policy maintains the values of its own attributes.
type AttrDep struct {
	Descriptor attribute.Descriptor
	Hard       bool
}

// Hooks exposes O(1) operations on the store's shared intrusive ordering
// list. All calls happen synchronously inside a store mutation; hooks
// manage only the list — map bookkeeping belongs to the store.
type Hooks[K comparable, V any] interface {
	// AddFirst inserts e at the head of the list.
	AddFirst(e Entry[K, V])
	// AddLast inserts e at the tail of the list.
	AddLast(e Entry[K, V])
	// MoveFirst promotes e to the head in O(1).
	MoveFirst(e Entry[K, V])
	// MoveLast demotes e to the tail in O(1).
	MoveLast(e Entry[K, V])
	// RemoveFirst detaches and returns the head, or nil if the list is empty.
	RemoveFirst() Entry[K, V]
	// RemoveLast detaches and returns the tail, or nil if the list is empty.
	RemoveLast() Entry[K, V]
	// Remove detaches e from wherever it sits in the list.
	Remove(e Entry[K, V])
	// ReplaceNode transplants old's list position onto new in O(1), without
	// walking the list.
	ReplaceNode(old, new Entry[K, V])
	// Head returns the current head, or nil if the list is empty.
	Head() Entry[K, V]
	// Tail returns the current tail, or nil if the list is empty.
	Tail() Entry[K, V]
	// Next returns the entry after e, or nil at the tail.
	Next(e Entry[K, V]) Entry[K, V]
	// Prev returns the entry before e, or nil at the head.
	Prev(e Entry[K, V]) Entry[K, V]
	// Len returns the number of entries currently linked.
	Len() int
}

// Policy decides admission and victim selection for the store. Exactly one
// Policy instance is bound to exactly one store, via Init, before the store
// accepts its first mutation.
type Policy[K comparable, V any] interface {
	// Init binds the policy to the store's Hooks. Called once, before any
	// other method, when the store starts.
	Init(h Hooks[K, V])

	// Dependencies declares the attributes this policy needs. Called once,
	// immediately after Init, while the store is still accepting attribute
	// registrations.
	Dependencies() []AttrDep

	// Add is called for a brand-new entry. Returning false vetoes admission
	// — the store will not insert the entry.
	Add(e Entry[K, V]) bool

	// Replace is called when an entry already exists for a key. It returns
	// whichever of old or new should be retained; returning old keeps the
	// existing entry and discards new.
	Replace(old, new Entry[K, V]) Entry[K, V]

	// Remove is called when the store drops an entry for a reason other
	// than eviction (i.e. not via EvictNext).
	Remove(e Entry[K, V])

	// Touch is called on read hits.
	Touch(e Entry[K, V])

	// EvictNext selects and removes the policy's current victim, updating
	// any internal bookkeeping, and returns it. Must return a non-nil entry
	// that the policy currently holds. Policies with no capacity to enforce
	// should panic with ErrEvictUnsupported rather than return nil.
	EvictNext() Entry[K, V]

	// Clear resets all internal structures.
	Clear()
}
