package fifo_test

import (
	"testing"

	"github.com/cakecache/cake/policy/fifo"
	"github.com/cakecache/cake/policy/policytest"
)

func TestFIFOEvictsInsertionOrder(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := fifo.New[string, int]()
	p.Init(h)

	keys := []string{"a", "b", "c"}
	entries := make([]*policytest.Entry[string, int], 0, len(keys))
	for _, k := range keys {
		e := policytest.NewEntry(k, 0)
		entries = append(entries, e)
		p.Add(e)
	}

	// Touch must not change FIFO order.
	p.Touch(entries[0])

	for _, want := range keys {
		if got := p.EvictNext().Key(); got != want {
			t.Fatalf("EvictNext = %v, want %v", got, want)
		}
	}
}

func TestFIFORemove(t *testing.T) {
	h := &policytest.Hooks[string, int]{}
	p := fifo.New[string, int]()
	p.Init(h)

	e1 := policytest.NewEntry("1", 1)
	e2 := policytest.NewEntry("2", 2)
	p.Add(e1)
	p.Add(e2)
	p.Remove(e1)

	if h.Len() != 1 {
		t.Fatalf("Len after remove = %d, want 1", h.Len())
	}
	if got := p.EvictNext().Key(); got != "2" {
		t.Fatalf("EvictNext = %v, want 2", got)
	}
}
