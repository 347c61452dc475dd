package clock_test

import (
	"testing"

	"github.com/cakecache/cake/policy/clock"
	"github.com/cakecache/cake/policy/policytest"
)

func TestClockSkipsTouchedEntryOnce(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := clock.New[string, int]()
	p.Init(h)

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	e3 := policytest.NewEntry("3", 3)
	p.Add(e1)
	p.Add(e2)
	p.Add(e3)

	p.Touch(e1) // e1's reference bit is set, giving it a second chance.

	victim := p.EvictNext()
	if victim.Key() != "2" {
		t.Fatalf("evicted key = %v, want 2", victim.Key())
	}
}

func TestClockEvictsAllWhenNoneTouched(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := clock.New[string, int]()
	p.Init(h)

	keys := []string{"a", "b", "c"}
	for _, k := range keys {
		p.Add(policytest.NewEntry(k, 0))
	}

	seen := make(map[string]bool)
	for range keys {
		seen[p.EvictNext().Key()] = true
	}
	for _, k := range keys {
		if !seen[k] {
			t.Fatalf("key %v was never evicted", k)
		}
	}
}

func TestClockPanicsOnEmpty(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := clock.New[string, int]()
	p.Init(h)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty EvictNext")
		}
	}()
	p.EvictNext()
}
