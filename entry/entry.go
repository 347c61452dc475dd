// Package entry defines the immutable value returned to callers of the
// store: a key, a value, and the attribute map carried alongside them.
package entry

import (
	"fmt"
	"reflect"

	"github.com/cakecache/cake/attribute"
)

// Entry is an immutable {key, value, attributes} triple. A replace produces
// a new Entry rather than mutating an existing one; the store's internal
// node wrapper (unexported) is what actually changes over time.
type Entry[K comparable, V any] struct {
	key   K
	value V
	attrs *attribute.Map
}

// New constructs an Entry. A nil attrs is normalized to attribute.Empty().
func New[K comparable, V any](key K, value V, attrs *attribute.Map) *Entry[K, V] {
	if attrs == nil {
		attrs = attribute.Empty()
	}
	return &Entry[K, V]{key: key, value: value, attrs: attrs}
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K { return e.key }

// Value returns the entry's value.
func (e *Entry[K, V]) Value() V { return e.value }

// Attributes returns the entry's attribute map. Never nil.
func (e *Entry[K, V]) Attributes() *attribute.Map { return e.attrs }

// String renders the entry for test failure messages and debugging.
func (e *Entry[K, V]) String() string {
	return fmt.Sprintf("Entry{%v=%v}", e.key, e.value)
}

// Attr reads a single attribute off e, delegating to attribute.Get.
func Attr[K comparable, V any, T any](e *Entry[K, V], a *attribute.Attribute[T]) T {
	return attribute.Get(e.Attributes(), a)
}

// Equal reports whether a and b have equal keys and equal values per eq.
// Attribute contents never participate in equality, per the data model.
func Equal[K comparable, V any](a, b *Entry[K, V], eq func(V, V) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key == b.key && eq(a.value, b.value)
}

// DeepEqual is Equal using reflect.DeepEqual as the value comparator, for
// value types that aren't `comparable`.
func DeepEqual[K comparable, V any](a, b *Entry[K, V]) bool {
	return Equal(a, b, func(x, y V) bool { return reflect.DeepEqual(x, y) })
}
