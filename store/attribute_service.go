package store

import (
	"time"

	"github.com/cakecache/cake/attribute"
)

// Clock abstracts time.Now for deterministic tests, mirroring
// IvanBrykalov-shardcache/cache/options.go's Clock interface.
type Clock interface{ NowUnixNano() int64 }

type systemClock struct{}

func (systemClock) NowUnixNano() int64 { return time.Now().UnixNano() }

// AttributeService is the store's C1 collaborator: it decides what an
// entry's attribute map looks like at creation, at update, and bumps
// access-tracking slots on a read hit.
type AttributeService[K comparable, V any] interface {
	// Create builds the attribute map for a brand-new entry. attrs is
	// whatever the caller passed to Put (possibly nil).
	Create(key K, value V, attrs *attribute.Map) *attribute.Map
	// Update builds the attribute map for an entry replacing previous.
	// attrs is whatever the caller passed to Put; previous is the old
	// entry's attribute map, which Update may carry slots forward from.
	Update(key K, value V, attrs, previous *attribute.Map) *attribute.Map
	// Access is called on a read hit, before policy.Touch.
	Access(attrs *attribute.Map)
	// DependOnHard/DependOnSoft register a policy's attribute dependency.
	// Registering the same descriptor twice (hard or soft) fails.
	DependOnHard(d attribute.Descriptor) error
	DependOnSoft(d attribute.Descriptor) error
}

// DefaultAttributeService sets Size and Timestamp on create, and bumps Hits
// and Timestamp on access — the well-known attributes spec.md §3 names.
// Grounded on no single pack file (no example repo has a polymorphic
// attribute service of its own); the Size/Hits/Timestamp wiring follows
// spec.md's "well-known attributes used by the core" list directly.
type DefaultAttributeService[K comparable, V any] struct {
	Clock Clock

	hard map[attribute.Descriptor]bool
	soft map[attribute.Descriptor]bool
}

// NewDefaultAttributeService constructs a DefaultAttributeService. A nil
// clock falls back to the system clock.
func NewDefaultAttributeService[K comparable, V any](clock Clock) *DefaultAttributeService[K, V] {
	if clock == nil {
		clock = systemClock{}
	}
	return &DefaultAttributeService[K, V]{
		Clock: clock,
		hard:  make(map[attribute.Descriptor]bool),
		soft:  make(map[attribute.Descriptor]bool),
	}
}

func (s *DefaultAttributeService[K, V]) Create(_ K, _ V, attrs *attribute.Map) *attribute.Map {
	m := attrs.Clone()
	if !m.Contains(attribute.Size) {
		_ = attribute.Put(m, attribute.Size, attribute.Size.Default())
	}
	_ = attribute.Put(m, attribute.Timestamp, s.Clock.NowUnixNano())
	return m
}

func (s *DefaultAttributeService[K, V]) Update(_ K, _ V, attrs, previous *attribute.Map) *attribute.Map {
	m := attrs.Clone()
	if !m.Contains(attribute.Size) {
		if previous != nil && previous.Contains(attribute.Size) {
			_ = attribute.Put(m, attribute.Size, attribute.Get(previous, attribute.Size))
		} else {
			_ = attribute.Put(m, attribute.Size, attribute.Size.Default())
		}
	}
	_ = attribute.Put(m, attribute.Timestamp, s.Clock.NowUnixNano())
	return m
}

func (s *DefaultAttributeService[K, V]) Access(attrs *attribute.Map) {
	_ = attribute.Put(attrs, attribute.Hits, attribute.Get(attrs, attribute.Hits)+1)
	_ = attribute.Put(attrs, attribute.Timestamp, s.Clock.NowUnixNano())
}

func (s *DefaultAttributeService[K, V]) DependOnHard(d attribute.Descriptor) error {
	if s.hard[d] || s.soft[d] {
		return ErrDuplicateDependency
	}
	s.hard[d] = true
	return nil
}

func (s *DefaultAttributeService[K, V]) DependOnSoft(d attribute.Descriptor) error {
	if s.hard[d] || s.soft[d] {
		return ErrDuplicateDependency
	}
	s.soft[d] = true
	return nil
}

var _ AttributeService[string, int] = (*DefaultAttributeService[string, int])(nil)
