// Package noop implements the unlimited/no-op replacement policy: every
// entry is admitted, nothing is ever proposed for eviction. Used when the
// store enforces no capacity at all and exists only to keep a policy always
// configured (spec §4.4: "Unlimited/no-op... evictNext must not be called").
package noop

import "github.com/cakecache/cake/policy"

type noopPolicy[K comparable, V any] struct{}

// New constructs the no-op policy instance. A single instance can be shared
// across stores since it holds no state.
func New[K comparable, V any]() policy.Policy[K, V] {
	return noopPolicy[K, V]{}
}

func (noopPolicy[K, V]) Init(policy.Hooks[K, V]) {}

func (noopPolicy[K, V]) Dependencies() []policy.AttrDep { return nil }

func (noopPolicy[K, V]) Add(policy.Entry[K, V]) bool { return true }

func (noopPolicy[K, V]) Replace(_, new policy.Entry[K, V]) policy.Entry[K, V] { return new }

func (noopPolicy[K, V]) Remove(policy.Entry[K, V]) {}

func (noopPolicy[K, V]) Touch(policy.Entry[K, V]) {}

// EvictNext is a contract violation for this policy: there is never a
// capacity to enforce, so the store should never call it.
func (noopPolicy[K, V]) EvictNext() policy.Entry[K, V] {
	panic(policy.ErrEvictUnsupported)
}

func (noopPolicy[K, V]) Clear() {}
