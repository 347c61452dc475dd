package lfu_test

import (
	"testing"

	"github.com/cakecache/cake/policy/lfu"
	"github.com/cakecache/cake/policy/policytest"
)

func TestLFUEvictsLeastFrequentlyUsed(t *testing.T) {
	p := lfu.New[string, int]()

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	e3 := policytest.NewEntry("3", 3)
	p.Add(e1)
	p.Add(e2)
	p.Add(e3)

	p.Touch(e1)
	p.Touch(e1)
	p.Touch(e2)

	// e3 still has freq 1, the lowest, so it's evicted first.
	victim := p.EvictNext()
	if victim.Key() != "3" {
		t.Fatalf("evicted key = %v, want 3", victim.Key())
	}
}

func TestLFUTiesBreakByInsertionOrder(t *testing.T) {
	p := lfu.New[string, int]()

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)

	// Both at freq 1; oldest (e1) goes first.
	if got := p.EvictNext().Key(); got != "1" {
		t.Fatalf("EvictNext = %v, want 1", got)
	}
	if got := p.EvictNext().Key(); got != "2" {
		t.Fatalf("EvictNext = %v, want 2", got)
	}
}

func TestLFUMinFreqAdvancesOnlyWhenBucketEmpties(t *testing.T) {
	p := lfu.New[string, int]()

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)

	p.Touch(e1) // e1 moves to freq 2; e2 stays at freq 1, still the minimum.

	if got := p.EvictNext().Key(); got != "2" {
		t.Fatalf("EvictNext = %v, want 2 (still at min freq 1)", got)
	}
}

func TestLFUPanicsOnEmpty(t *testing.T) {
	p := lfu.New[string, int]()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty EvictNext")
		}
	}()
	p.EvictNext()
}

func TestLFURemoveEmptyingMinFreqBucketAdvancesMinFreq(t *testing.T) {
	p := lfu.New[string, int]()

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1) // freqs[1]=[e1], minFreq=1
	p.Add(e2) // freqs[1]=[e2,e1], minFreq=1

	p.Touch(e1) // freqs[1]=[e2], freqs[2]=[e1], minFreq stays 1

	p.Remove(e2) // empties freqs[1]; minFreq must advance to 2

	if got := p.EvictNext().Key(); got != "1" {
		t.Fatalf("EvictNext = %v, want 1 (still resident at freq 2)", got)
	}
}
