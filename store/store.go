// Package store implements the memory store: the keyed container that
// enforces capacity budgets and orchestrates a replacement policy on every
// mutation. It is the core this module exists to provide; everything else
// (attribute, entry, policy, loader, listener) exists to serve it.
package store

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/entry"
	"github.com/cakecache/cake/listener"
	"github.com/cakecache/cake/policy"
)

// Unbounded and UnboundedVolume are the sentinel MaxSize/MaxVolume values
// for "no limit at all" — spec.md's error table treats a non-positive
// MaxSize/MaxVolume as an invalid argument, so "unlimited" needs its own
// spelling rather than overloading zero.
const (
	Unbounded       = math.MaxInt
	UnboundedVolume = int64(math.MaxInt64)
)

type state int

const (
	stateCreated state = iota
	stateStarted
	stateShutdown
	stateTerminated
	statePoisoned
)

// Store is the C5 memory store: a key→entry hash map with count and volume
// budgets, driven through a Policy on every mutation. It assumes a single
// active mutator, per spec.md §5 — the concurrent package adds locking on
// top without changing these semantics.
type Store[K comparable, V any] struct {
	opts Options[K, V]

	state state

	m map[K]*node[K, V]

	listHead, listTail *node[K, V]
	listLen            int

	size   int
	volume int64
}

// New constructs a Store. MaxSize and MaxVolume must be positive; use
// Unbounded/UnboundedVolume for "no limit".
func New[K comparable, V any](opts Options[K, V]) (*Store[K, V], error) {
	if opts.MaxSize <= 0 {
		return nil, fmt.Errorf("%w: MaxSize must be positive (use store.Unbounded for no count limit)", ErrInvalidArgument)
	}
	if opts.MaxVolume <= 0 {
		return nil, fmt.Errorf("%w: MaxVolume must be positive (use store.UnboundedVolume for no volume limit)", ErrInvalidArgument)
	}
	opts.applyDefaults()
	return &Store[K, V]{opts: opts, m: make(map[K]*node[K, V])}, nil
}

// start freezes attribute registration and initializes the installed
// policy, per spec.md §5's "started exactly once" lifecycle step.
func (s *Store[K, V]) start() error {
	s.opts.Policy.Init(storeHooks[K, V]{s: s})
	for _, dep := range s.opts.Policy.Dependencies() {
		var err error
		if dep.Hard {
			err = s.opts.AttributeService.DependOnHard(dep.Descriptor)
		} else {
			err = s.opts.AttributeService.DependOnSoft(dep.Descriptor)
		}
		if err != nil {
			s.state = statePoisoned
			s.opts.ExceptionService.Fatal("duplicate attribute dependency during start", err)
			return fmt.Errorf("%w: %v", ErrPoisoned, err)
		}
	}
	s.state = stateStarted
	return nil
}

func (s *Store[K, V]) ensureStarted() error {
	switch s.state {
	case stateCreated:
		return s.start()
	case statePoisoned:
		return ErrPoisoned
	default:
		return nil
	}
}

// ensureWritable lazily starts the store and rejects the op if shut down.
func (s *Store[K, V]) ensureWritable() error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	if s.state == stateShutdown || s.state == stateTerminated {
		return ErrShutdown
	}
	return nil
}

// ensureReadable lazily starts the store but, unlike ensureWritable, stays
// callable after Shutdown — only Terminate or poisoning block it.
func (s *Store[K, V]) ensureReadable() error {
	if s.state == stateTerminated {
		return ErrShutdown
	}
	return s.ensureStarted()
}

// Shutdown rejects future mutations; Peek/Len/Volume/Disabled remain
// callable.
func (s *Store[K, V]) Shutdown() error {
	if s.state == statePoisoned {
		return ErrPoisoned
	}
	if s.state == stateTerminated {
		return ErrShutdown
	}
	if s.state == stateCreated {
		if err := s.start(); err != nil {
			return err
		}
	}
	s.state = stateShutdown
	return nil
}

// Terminate ends the store's lifecycle; nothing is callable afterward.
func (s *Store[K, V]) Terminate() error {
	if s.state == statePoisoned {
		return ErrPoisoned
	}
	s.state = stateTerminated
	return nil
}

func (s *Store[K, V]) recoverPoison(errOut *error) {
	if r := recover(); r != nil {
		s.state = statePoisoned
		cause := toError(r)
		s.opts.ExceptionService.Fatal("policy contract violation", cause)
		*errOut = fmt.Errorf("%w: %v", ErrPoisoned, cause)
	}
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func sizeOf[K comparable, V any](e *entry.Entry[K, V]) int64 {
	return entry.Attr(e, attribute.Size)
}

func (s *Store[K, V]) emitBefore(op listener.Op, key K) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.ExceptionService.Warning("listener panicked in Before", toError(r))
		}
	}()
	s.opts.Listener.Before(op, key)
}

func (s *Store[K, V]) emitAfter(op listener.Op, key K, prev, newE *entry.Entry[K, V], evicted []*entry.Entry[K, V]) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.ExceptionService.Warning("listener panicked in After", toError(r))
		}
	}()
	s.opts.Listener.After(listener.Event[K, V]{Op: op, Key: key, Previous: prev, New: newE, Evicted: evicted})
}

func (s *Store[K, V]) safeIsCacheable(e *entry.Entry[K, V]) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.ExceptionService.Fatal("isCacheable predicate panicked", toError(r))
			ok = false
		}
	}()
	return s.opts.IsCacheable(e)
}

var errReplaceContractViolation = fmt.Errorf("%w: Policy.Replace returned neither argument", policy.ErrEntryNotHeld)
var errEvictNotHeld = fmt.Errorf("%w: Policy.EvictNext returned an entry not held by the store", policy.ErrEntryNotHeld)

// putCore is the skeleton spec.md §4.5 describes, shared by Put, PutIfAbsent,
// and PutAll's per-entry application.
func (s *Store[K, V]) putCore(op listener.Op, key K, value V, attrs *attribute.Map, absentOnly bool) (prevOut, newOut *entry.Entry[K, V], evicted []*entry.Entry[K, V]) {
	s.emitBefore(op, key)

	prevNode, hadPrev := s.m[key]
	var prevE *entry.Entry[K, V]
	if hadPrev {
		prevE = prevNode.Entry
	}

	if s.opts.Disabled || (absentOnly && hadPrev) {
		s.emitAfter(op, key, prevE, nil, nil)
		return prevE, nil, nil
	}

	var newAttrs *attribute.Map
	if hadPrev {
		newAttrs = s.opts.AttributeService.Update(key, value, attrs, prevNode.Attributes())
	} else {
		newAttrs = s.opts.AttributeService.Create(key, value, attrs)
	}
	newE := entry.New(key, value, newAttrs)

	if s.opts.IsCacheable != nil && !s.safeIsCacheable(newE) {
		s.emitAfter(op, key, prevE, nil, nil)
		return prevE, nil, nil
	}

	nn := newNode(newE)

	if !hadPrev {
		if !s.opts.Policy.Add(nn) {
			s.emitAfter(op, key, prevE, nil, nil)
			return prevE, nil, nil
		}
		s.size++
		s.volume += sizeOf[K, V](newE)
		s.m[key] = nn
		trimmed := s.trim()
		s.opts.Metrics.Size(s.size, s.volume)
		s.emitAfter(op, key, nil, newE, trimmed)
		return nil, newE, trimmed
	}

	retained := s.opts.Policy.Replace(prevNode, nn)
	switch retained {
	case policy.Entry[K, V](nn):
		s.volume += sizeOf[K, V](newE) - sizeOf[K, V](prevE)
		s.m[key] = nn
		trimmed := s.trim()
		s.opts.Metrics.Size(s.size, s.volume)
		s.emitAfter(op, key, prevE, newE, trimmed)
		return prevE, newE, trimmed
	case policy.Entry[K, V](prevNode):
		s.emitAfter(op, key, prevE, prevE, nil)
		return prevE, prevE, nil
	default:
		panic(errReplaceContractViolation)
	}
}

// Put inserts or updates key, running admission and trim per the skeleton.
func (s *Store[K, V]) Put(key K, value V, attrs *attribute.Map) (previous, newEntry *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, nil, nil, err
	}
	defer s.recoverPoison(&err)
	previous, newEntry, evicted = s.putCore(listener.OpPut, key, value, attrs, false)
	return previous, newEntry, evicted, nil
}

// PutIfAbsent is Put with absentOnly=true: a no-op beyond reporting
// previous when the key already has an entry.
func (s *Store[K, V]) PutIfAbsent(key K, value V, attrs *attribute.Map) (previous, newEntry *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, nil, nil, err
	}
	defer s.recoverPoison(&err)
	previous, newEntry, evicted = s.putCore(listener.OpPut, key, value, attrs, true)
	return previous, newEntry, evicted, nil
}

// KV is one entry of a PutAll batch.
type KV[K comparable, V any] struct {
	Key   K
	Value V
	Attrs *attribute.Map
}

// PutResult is PutAll's per-entry outcome, matching what an individual Put
// would have returned for that entry.
type PutResult[K comparable, V any] struct {
	Key      K
	Previous *entry.Entry[K, V]
	New      *entry.Entry[K, V]
	Evicted  []*entry.Entry[K, V]
}

// PutAll applies the put skeleton once per item, in order, emitting one
// listener event (Op=OpPutAll) per entry rather than a single aggregate
// event — per-entry semantics are spec.md's explicit choice for
// observability (§9 open question).
func (s *Store[K, V]) PutAll(items []KV[K, V]) (results []PutResult[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)

	results = make([]PutResult[K, V], 0, len(items))
	for _, it := range items {
		prev, newE, evicted := s.putCore(listener.OpPutAll, it.Key, it.Value, it.Attrs, false)
		results = append(results, PutResult[K, V]{Key: it.Key, Previous: prev, New: newE, Evicted: evicted})
	}
	return results, nil
}

// Get looks up key, bumping access attributes and touching the policy on a
// hit.
func (s *Store[K, V]) Get(key K) (found *entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)

	s.emitBefore(listener.OpGet, key)
	n, ok := s.m[key]
	if !ok {
		s.opts.Metrics.Miss()
		s.emitAfter(listener.OpGet, key, nil, nil, nil)
		return nil, nil
	}
	s.opts.AttributeService.Access(n.Attributes())
	s.opts.Policy.Touch(n)
	s.opts.Metrics.Hit()
	s.emitAfter(listener.OpGet, key, n.Entry, n.Entry, nil)
	return n.Entry, nil
}

// Peek looks up key without touching attributes or the policy.
func (s *Store[K, V]) Peek(key K) (*entry.Entry[K, V], error) {
	if err := s.ensureReadable(); err != nil {
		return nil, err
	}
	n, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	return n.Entry, nil
}

func (s *Store[K, V]) removeNode(n *node[K, V]) *entry.Entry[K, V] {
	s.opts.Policy.Remove(n)
	delete(s.m, n.Key())
	s.size--
	s.volume -= sizeOf[K, V](n.Entry)
	return n.Entry
}

// Remove deletes key unconditionally, informing the policy.
func (s *Store[K, V]) Remove(key K) (removed *entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)

	s.emitBefore(listener.OpRemove, key)
	n, ok := s.m[key]
	if !ok {
		s.emitAfter(listener.OpRemove, key, nil, nil, nil)
		return nil, nil
	}
	e := s.removeNode(n)
	s.opts.Metrics.Size(s.size, s.volume)
	s.emitAfter(listener.OpRemove, key, e, nil, nil)
	return e, nil
}

// RemoveValue deletes key only if its current value equals value per eq.
func (s *Store[K, V]) RemoveValue(key K, value V, eq func(a, b V) bool) (removed bool, err error) {
	if err = s.ensureWritable(); err != nil {
		return false, err
	}
	defer s.recoverPoison(&err)

	s.emitBefore(listener.OpRemove, key)
	n, ok := s.m[key]
	if !ok || !eq(n.Value(), value) {
		s.emitAfter(listener.OpRemove, key, nil, nil, nil)
		return false, nil
	}
	e := s.removeNode(n)
	s.opts.Metrics.Size(s.size, s.volume)
	s.emitAfter(listener.OpRemove, key, e, nil, nil)
	return true, nil
}

// RemoveAll deletes every key present in keys, returning the entries that
// were actually removed.
func (s *Store[K, V]) RemoveAll(keys []K) (removed []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)

	for _, key := range keys {
		s.emitBefore(listener.OpRemove, key)
		n, ok := s.m[key]
		if !ok {
			s.emitAfter(listener.OpRemove, key, nil, nil, nil)
			continue
		}
		e := s.removeNode(n)
		removed = append(removed, e)
		s.emitAfter(listener.OpRemove, key, e, nil, nil)
	}
	s.opts.Metrics.Size(s.size, s.volume)
	return removed, nil
}

// Clear removes every entry, resetting the store to empty.
func (s *Store[K, V]) Clear() (cleared []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)

	var zeroKey K
	s.emitBefore(listener.OpClear, zeroKey)
	cleared = make([]*entry.Entry[K, V], 0, len(s.m))
	for _, n := range s.m {
		cleared = append(cleared, n.Entry)
	}
	s.m = make(map[K]*node[K, V])
	s.listHead, s.listTail, s.listLen = nil, nil, 0
	s.size, s.volume = 0, 0
	s.opts.Policy.Clear()
	s.opts.Metrics.Size(0, 0)
	s.emitAfter(listener.OpClear, zeroKey, nil, nil, cleared)
	return cleared, nil
}

// Replace performs an atomic compare-and-swap on key's value. If old is
// non-nil it must equal the current value per eq for the replace to
// proceed; if key has no current entry, Replace fails with ErrKeyNotFound
// — there is nothing to compare against or replace.
func (s *Store[K, V]) Replace(key K, old *V, eq func(a, b V) bool, newValue V, attrs *attribute.Map) (retained bool, current *entry.Entry[K, V], evicted []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return false, nil, nil, err
	}
	defer s.recoverPoison(&err)

	n, ok := s.m[key]
	if !ok {
		return false, nil, nil, ErrKeyNotFound
	}
	if old != nil && !eq(n.Value(), *old) {
		return false, n.Entry, nil, nil
	}

	s.emitBefore(listener.OpReplace, key)
	prevE := n.Entry
	newAttrs := s.opts.AttributeService.Update(key, newValue, attrs, n.Attributes())
	newE := entry.New(key, newValue, newAttrs)

	if s.opts.IsCacheable != nil && !s.safeIsCacheable(newE) {
		s.emitAfter(listener.OpReplace, key, prevE, prevE, nil)
		return false, prevE, nil, nil
	}

	nn := newNode(newE)
	ret := s.opts.Policy.Replace(n, nn)
	switch ret {
	case policy.Entry[K, V](nn):
		s.volume += sizeOf[K, V](newE) - sizeOf[K, V](prevE)
		s.m[key] = nn
		trimmed := s.trim()
		s.opts.Metrics.Size(s.size, s.volume)
		s.emitAfter(listener.OpReplace, key, prevE, newE, trimmed)
		return true, newE, trimmed, nil
	case policy.Entry[K, V](n):
		s.emitAfter(listener.OpReplace, key, prevE, prevE, nil)
		return false, prevE, nil, nil
	default:
		panic(errReplaceContractViolation)
	}
}

// ReplaceValue is Replace for a comparable V, comparing old with ==.
func ReplaceValue[K comparable, V comparable](s *Store[K, V], key K, old, newValue V, attrs *attribute.Map) (bool, *entry.Entry[K, V], []*entry.Entry[K, V], error) {
	o := old
	return s.Replace(key, &o, func(a, b V) bool { return a == b }, newValue, attrs)
}

// Len returns the number of resident entries.
func (s *Store[K, V]) Len() (int, error) {
	if err := s.ensureReadable(); err != nil {
		return 0, err
	}
	return s.size, nil
}

// Volume returns the sum of Size(entry) over resident entries.
func (s *Store[K, V]) Volume() (int64, error) {
	if err := s.ensureReadable(); err != nil {
		return 0, err
	}
	return s.volume, nil
}

// Disabled reports whether Put is configured as a no-op.
func (s *Store[K, V]) Disabled() bool { return s.opts.Disabled }

// GetOrLoad returns key's entry, invoking the configured loader on a miss.
func (s *Store[K, V]) GetOrLoad(ctx context.Context, key K, attrs *attribute.Map) (*entry.Entry[K, V], error) {
	found, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	if s.opts.Loader == nil {
		return nil, ErrNoLoader
	}

	value, loadAttrs, loadErr := s.opts.Loader(ctx, key, attrs)
	if loadErr != nil {
		value, loadErr = s.opts.ExceptionService.LoadFailed(ctx, loadErr, key, attrs)
		if loadErr != nil {
			return nil, loadErr
		}
	}
	if loadAttrs == nil {
		loadAttrs = attrs
	}
	_, newE, _, err := s.Put(key, value, loadAttrs)
	if err != nil {
		return nil, err
	}
	return newE, nil
}

func (s *Store[K, V]) needsTrim() bool {
	return s.size > s.opts.MaxSize || s.volume > s.opts.MaxVolume
}

func (s *Store[K, V]) evictNext() *entry.Entry[K, V] {
	victim := s.opts.Policy.EvictNext()
	n, ok := victim.(*node[K, V])
	if !ok || n == nil {
		panic(errEvictNotHeld)
	}
	if _, present := s.m[n.Key()]; !present {
		panic(errEvictNotHeld)
	}
	delete(s.m, n.Key())
	s.size--
	s.volume -= sizeOf[K, V](n.Entry)
	s.opts.Metrics.Evict(listener.OpTrim)
	return n.Entry
}

// evictNode removes n the way a comparator-driven trim does: informing the
// policy (not via EvictNext, since the victim was chosen externally) and
// counting it against the eviction metric.
func (s *Store[K, V]) evictNode(n *node[K, V]) *entry.Entry[K, V] {
	e := s.removeNode(n)
	s.opts.Metrics.Evict(listener.OpTrim)
	return e
}

// trim implements spec.md §4.5.1: loop on evictNext until budgets hold,
// or defer to a custom Evictor with a liveness fallback.
func (s *Store[K, V]) trim() []*entry.Entry[K, V] {
	if !s.needsTrim() {
		return nil
	}
	if s.opts.Evictor == nil {
		return s.trimDefault()
	}
	before := s.size
	trimmed := s.runEvictor()
	if s.size == before {
		s.opts.ExceptionService.Warning("evictor made no progress, falling back to evictNext", nil)
		trimmed = append(trimmed, s.evictNext())
	}
	return trimmed
}

func (s *Store[K, V]) trimDefault() []*entry.Entry[K, V] {
	var evicted []*entry.Entry[K, V]
	for s.needsTrim() {
		evicted = append(evicted, s.evictNext())
	}
	return evicted
}

type evictorView[K comparable, V any] struct {
	s       *Store[K, V]
	evicted []*entry.Entry[K, V]
}

func (v *evictorView[K, V]) Size() int        { return v.s.size }
func (v *evictorView[K, V]) Volume() int64    { return v.s.volume }
func (v *evictorView[K, V]) MaxSize() int     { return v.s.opts.MaxSize }
func (v *evictorView[K, V]) MaxVolume() int64 { return v.s.opts.MaxVolume }

func (v *evictorView[K, V]) TrimToSize(target int, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	e := v.s.trimToSize(target, cmp)
	v.evicted = append(v.evicted, e...)
	return e
}

func (v *evictorView[K, V]) TrimToVolume(target int64, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	e := v.s.trimToVolume(target, cmp)
	v.evicted = append(v.evicted, e...)
	return e
}

func (s *Store[K, V]) runEvictor() []*entry.Entry[K, V] {
	view := &evictorView[K, V]{s: s}
	s.opts.Evictor.Evict(view)
	return view.evicted
}

// trimCount resolves spec.md §4.5.1's trimToSize sign convention: target>=0
// means "remove max(0, size-target)"; target<0 means "remove |target|
// entries" clamped to size, and MinInt means "remove all".
func (s *Store[K, V]) trimCount(target int) int {
	if target >= 0 {
		if n := s.size - target; n > 0 {
			return n
		}
		return 0
	}
	if target == math.MinInt {
		return s.size
	}
	n := -target
	if n > s.size {
		n = s.size
	}
	return n
}

func (s *Store[K, V]) trimToSize(target int, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	n := s.trimCount(target)
	if n <= 0 {
		return nil
	}
	if cmp == nil {
		evicted := make([]*entry.Entry[K, V], 0, n)
		for i := 0; i < n && s.size > 0; i++ {
			evicted = append(evicted, s.evictNext())
		}
		return evicted
	}
	return s.evictSortedPrefix(n, cmp)
}

func (s *Store[K, V]) evictSortedPrefix(n int, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	nodes := s.snapshotNodes()
	sort.Slice(nodes, func(i, j int) bool { return cmp(nodes[i].Entry, nodes[j].Entry) })
	if n > len(nodes) {
		n = len(nodes)
	}
	evicted := make([]*entry.Entry[K, V], 0, n)
	for i := 0; i < n; i++ {
		evicted = append(evicted, s.evictNode(nodes[i]))
	}
	return evicted
}

// trimVolumeAmount resolves spec.md §4.5.1's trimToVolume sign convention,
// symmetric to trimCount: MinInt64 means "remove all".
func (s *Store[K, V]) trimVolumeAmount(target int64) int64 {
	if target >= 0 {
		if n := s.volume - target; n > 0 {
			return n
		}
		return 0
	}
	if target == math.MinInt64 {
		return s.volume
	}
	return -target
}

func (s *Store[K, V]) trimToVolume(target int64, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	want := s.trimVolumeAmount(target)
	if want <= 0 {
		return nil
	}
	if cmp == nil {
		var evicted []*entry.Entry[K, V]
		var freed int64
		for freed < want && s.size > 0 {
			e := s.evictNext()
			freed += sizeOf[K, V](e)
			evicted = append(evicted, e)
		}
		return evicted
	}
	return s.evictSortedByVolume(want, cmp)
}

func (s *Store[K, V]) evictSortedByVolume(want int64, cmp Comparator[K, V]) []*entry.Entry[K, V] {
	nodes := s.snapshotNodes()
	sort.Slice(nodes, func(i, j int) bool { return cmp(nodes[i].Entry, nodes[j].Entry) })
	var evicted []*entry.Entry[K, V]
	var freed int64
	for _, n := range nodes {
		if freed >= want {
			break
		}
		freed += sizeOf[K, V](n.Entry)
		evicted = append(evicted, s.evictNode(n))
	}
	return evicted
}

func (s *Store[K, V]) snapshotNodes() []*node[K, V] {
	nodes := make([]*node[K, V], 0, len(s.m))
	for _, n := range s.m {
		nodes = append(nodes, n)
	}
	return nodes
}

// TrimToSize evicts down to target resident entries (see trimCount for the
// sign convention) using cmp to choose the victims, or the policy's own
// evictNext order if cmp is nil.
func (s *Store[K, V]) TrimToSize(target int, cmp Comparator[K, V]) (evicted []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)
	evicted = s.trimToSize(target, cmp)
	s.opts.Metrics.Size(s.size, s.volume)
	return evicted, nil
}

// TrimToVolume evicts down to target resident volume (see trimVolumeAmount
// for the sign convention) using cmp to choose the victims, or the
// policy's own evictNext order if cmp is nil.
func (s *Store[K, V]) TrimToVolume(target int64, cmp Comparator[K, V]) (evicted []*entry.Entry[K, V], err error) {
	if err = s.ensureWritable(); err != nil {
		return nil, err
	}
	defer s.recoverPoison(&err)
	evicted = s.trimToVolume(target, cmp)
	s.opts.Metrics.Size(s.size, s.volume)
	return evicted, nil
}
