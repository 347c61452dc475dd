package store_test

import (
	"testing"

	"github.com/cakecache/cake/attribute"
	"github.com/cakecache/cake/policy"
	"github.com/cakecache/cake/policy/fifo"
	"github.com/cakecache/cake/policy/lru"
	"github.com/cakecache/cake/store"
)

func sizedAttrs(n int64) *attribute.Map {
	m := attribute.NewMap()
	_ = attribute.Put(m, attribute.Size, n)
	return m
}

func TestCapacityByCountEvictsFIFO(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   3,
		MaxVolume: store.UnboundedVolume,
		Policy:    fifo.New[int, string](),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, _, err := s.Put(1, "a", nil); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put(2, "b", nil); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put(3, "c", nil); err != nil {
		t.Fatal(err)
	}
	_, _, evicted, err := s.Put(4, "d", nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(evicted) != 1 || evicted[0].Key() != 1 || evicted[0].Value() != "a" {
		t.Fatalf("evicted = %v, want [(1,a)]", evicted)
	}
	for _, k := range []int{2, 3, 4} {
		if e, _ := s.Peek(k); e == nil {
			t.Errorf("Peek(%d) = nil, want present", k)
		}
	}
	if e, _ := s.Peek(1); e != nil {
		t.Errorf("Peek(1) = %v, want nil", e)
	}
	if n, _ := s.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
}

func TestLRUTouchKeepsRecentlyUsed(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   3,
		MaxVolume: store.UnboundedVolume,
		Policy:    lru.New[int, string](),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, k := range []int{1, 2, 3} {
		if _, _, _, err := s.Put(k, "v", nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Get(1); err != nil {
		t.Fatal(err)
	}
	_, _, evicted, err := s.Put(4, "v", nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(evicted) != 1 || evicted[0].Key() != 2 {
		t.Fatalf("evicted = %v, want key 2", evicted)
	}
	for _, k := range []int{1, 3, 4} {
		if e, _ := s.Peek(k); e == nil {
			t.Errorf("Peek(%d) = nil, want present", k)
		}
	}
}

func TestVolumeCapEvictsUntilUnderBudget(t *testing.T) {
	s, err := store.New[string, string](store.Options[string, string]{
		MaxSize:   store.Unbounded,
		MaxVolume: 10,
		Policy:    fifo.New[string, string](),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, _, err := s.Put("a", "v", sizedAttrs(4)); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put("b", "v", sizedAttrs(4)); err != nil {
		t.Fatal(err)
	}
	_, _, evicted, err := s.Put("c", "v", sizedAttrs(4))
	if err != nil {
		t.Fatal(err)
	}

	if len(evicted) != 1 {
		t.Fatalf("evicted = %v, want exactly one entry", evicted)
	}
	vol, _ := s.Volume()
	if vol != 8 {
		t.Errorf("Volume() = %d, want 8", vol)
	}
	if n, _ := s.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestDisabledStorePutIsNoop(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   store.Unbounded,
		MaxVolume: store.UnboundedVolume,
		Disabled:  true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev, newE, evicted, err := s.Put(1, "v", nil)
	if err != nil {
		t.Fatal(err)
	}
	if prev != nil || newE != nil || len(evicted) != 0 {
		t.Fatalf("Put on disabled store = (%v, %v, %v), want (nil, nil, [])", prev, newE, evicted)
	}
	if e, err := s.Get(1); err != nil || e != nil {
		t.Errorf("Get(1) = (%v, %v), want (nil, nil)", e, err)
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestReplaceContract(t *testing.T) {
	s, err := store.New[string, string](store.Options[string, string]{
		MaxSize:   store.Unbounded,
		MaxVolume: store.UnboundedVolume,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, _, err := s.Put("k", "v", nil); err != nil {
		t.Fatal(err)
	}

	retained, current, _, err := store.ReplaceValue(s, "k", "wrong", "new", nil)
	if err != nil {
		t.Fatal(err)
	}
	if retained || current.Value() != "v" {
		t.Fatalf("Replace(wrong) = (%v, %v), want (false, v)", retained, current.Value())
	}

	retained, current, _, err = store.ReplaceValue(s, "k", "v", "new", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !retained || current.Value() != "new" {
		t.Fatalf("Replace(v) = (%v, %v), want (true, new)", retained, current.Value())
	}
}

func TestReplaceOnMissingKeyFailsWithKeyNotFound(t *testing.T) {
	s, err := store.New[string, string](store.Options[string, string]{
		MaxSize:   store.Unbounded,
		MaxVolume: store.UnboundedVolume,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _, _, err = store.ReplaceValue(s, "missing", "old", "new", nil)
	if err != store.ErrKeyNotFound {
		t.Fatalf("err = %v, want ErrKeyNotFound", err)
	}
}

type spillToTwoEvictor[K comparable, V any] struct{}

func (spillToTwoEvictor[K, V]) Evict(view store.EvictorView[K, V]) {
	view.TrimToSize(2, nil)
}

func TestCustomEvictorTrim(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   5,
		MaxVolume: store.UnboundedVolume,
		Policy:    lru.New[int, string](),
		Evictor:   spillToTwoEvictor[int, string]{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, k := range []int{1, 2, 3, 4, 5} {
		if _, _, _, err := s.Put(k, "v", nil); err != nil {
			t.Fatal(err)
		}
	}
	_, _, evicted, err := s.Put(6, "v", nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(evicted) != 4 {
		t.Fatalf("evicted = %d entries, want 4", len(evicted))
	}
	if n, _ := s.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestTrimToSizeZeroEmptiesStore(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   store.Unbounded,
		MaxVolume: store.UnboundedVolume,
		Policy:    fifo.New[int, string](),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, k := range []int{1, 2, 3} {
		if _, _, _, err := s.Put(k, "v", nil); err != nil {
			t.Fatal(err)
		}
	}

	evicted, err := s.TrimToSize(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(evicted) != 3 {
		t.Fatalf("evicted = %d entries, want 3", len(evicted))
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestPutTwiceEquivalentToSinglePutOfSecondValue(t *testing.T) {
	a, err := store.New[int, string](store.Options[int, string]{MaxSize: store.Unbounded, MaxVolume: store.UnboundedVolume})
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.New[int, string](store.Options[int, string]{MaxSize: store.Unbounded, MaxVolume: store.UnboundedVolume})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := a.Put(1, "v1", nil); err != nil {
		t.Fatal(err)
	}
	firstPrev, _, _, err := a.Put(1, "v2", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := b.Put(1, "v2", nil); err != nil {
		t.Fatal(err)
	}

	aLen, _ := a.Len()
	bLen, _ := b.Len()
	aVol, _ := a.Volume()
	bVol, _ := b.Volume()
	if aLen != bLen || aVol != bVol {
		t.Fatalf("double-put diverged from single-put of final value: (%d,%d) vs (%d,%d)", aLen, aVol, bLen, bVol)
	}
	if firstPrev == nil || firstPrev.Value() != "v1" {
		t.Fatalf("previous returned by second put = %v, want the first put's entry", firstPrev)
	}
}

func TestRemoveThenGetReturnsNil(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{MaxSize: store.Unbounded, MaxVolume: store.UnboundedVolume})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put(1, "v", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Remove(1); err != nil {
		t.Fatal(err)
	}
	if e, err := s.Get(1); err != nil || e != nil {
		t.Fatalf("Get(1) after Remove = (%v, %v), want (nil, nil)", e, err)
	}
}

func TestClearEmptiesStore(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{MaxSize: store.Unbounded, MaxVolume: store.UnboundedVolume})
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{1, 2, 3} {
		if _, _, _, err := s.Put(k, "v", nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{1, 2, 3} {
		if e, _ := s.Peek(k); e != nil {
			t.Errorf("Peek(%d) after Clear = %v, want nil", k, e)
		}
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	if v, _ := s.Volume(); v != 0 {
		t.Errorf("Volume() = %d, want 0", v)
	}
}

func TestShutdownRejectsMutationsButAllowsPeek(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{MaxSize: store.Unbounded, MaxVolume: store.UnboundedVolume})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put(1, "v", nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := s.Put(2, "v", nil); err != store.ErrShutdown {
		t.Fatalf("Put after Shutdown: err = %v, want ErrShutdown", err)
	}
	if e, err := s.Peek(1); err != nil || e == nil {
		t.Fatalf("Peek after Shutdown = (%v, %v), want the surviving entry", e, err)
	}
	if n, err := s.Len(); err != nil || n != 1 {
		t.Fatalf("Len() after Shutdown = (%d, %v), want (1, nil)", n, err)
	}
}

// brokenReplacePolicy violates Policy.Replace's contract (returning neither
// argument) to exercise the store's poisoning path.
type brokenReplacePolicy[K comparable, V any] struct{}

func (brokenReplacePolicy[K, V]) Init(policy.Hooks[K, V])        {}
func (brokenReplacePolicy[K, V]) Dependencies() []policy.AttrDep { return nil }
func (brokenReplacePolicy[K, V]) Add(policy.Entry[K, V]) bool    { return true }
func (brokenReplacePolicy[K, V]) Replace(_, _ policy.Entry[K, V]) policy.Entry[K, V] {
	return nil
}
func (brokenReplacePolicy[K, V]) Remove(policy.Entry[K, V]) {}
func (brokenReplacePolicy[K, V]) Touch(policy.Entry[K, V])  {}
func (brokenReplacePolicy[K, V]) EvictNext() policy.Entry[K, V] {
	panic("evictNext unused by this test")
}
func (brokenReplacePolicy[K, V]) Clear() {}

func TestPoisonedStoreRejectsEveryOpUntilRecreated(t *testing.T) {
	s, err := store.New[int, string](store.Options[int, string]{
		MaxSize:   1,
		MaxVolume: store.UnboundedVolume,
		Policy:    brokenReplacePolicy[int, string]{},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := s.Put(1, "a", nil); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Put(1, "b", nil); err == nil {
		t.Fatal("Put with contract-violating Replace: want an error, got nil")
	}

	if _, _, _, err := s.Put(2, "c", nil); err != store.ErrPoisoned {
		t.Fatalf("err = %v, want ErrPoisoned", err)
	}
	if _, err := s.Get(1); err != store.ErrPoisoned {
		t.Fatalf("Get: err = %v, want ErrPoisoned", err)
	}
	if _, err := s.Peek(1); err != store.ErrPoisoned {
		t.Fatalf("Peek: err = %v, want ErrPoisoned", err)
	}
	if _, err := s.Remove(1); err != store.ErrPoisoned {
		t.Fatalf("Remove: err = %v, want ErrPoisoned", err)
	}
}
