package twoq_test

import (
	"testing"

	"github.com/cakecache/cake/policy/policytest"
	"github.com/cakecache/cake/policy/twoq"
)

func TestTwoQEvictsA1inBeforeAm(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := twoq.New[string, int](1, 10)
	p.Init(h)

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)

	// A1in now holds [2, 1] (head to tail), over its capacity of 1.
	victim := p.EvictNext()
	if victim.Key() != "1" {
		t.Fatalf("evicted key = %v, want 1 (A1in tail)", victim.Key())
	}
}

func TestTwoQGhostReadmitsDirectlyToAm(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := twoq.New[string, int](1, 10)
	p.Init(h)

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)
	p.EvictNext() // evicts "1" from A1in, records it as a ghost.

	e1b := policytest.NewEntry("1", 99)
	p.Add(e1b) // "1" is a ghost, so it's readmitted straight into Am.

	// A1in now holds only "2", which is within its capacity of 1, so the
	// next eviction falls back to the shared Am tail: "2", since "1" was
	// readmitted at the head.
	victim := p.EvictNext()
	if victim.Key() != "2" {
		t.Fatalf("evicted key = %v, want 2", victim.Key())
	}
}

func TestTwoQTouchPromotesOutOfA1in(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := twoq.New[string, int](5, 10)
	p.Init(h)

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)
	p.Touch(e1)

	if got := p.EvictNext().Key(); got != "2" {
		t.Fatalf("EvictNext = %v, want 2", got)
	}
}
