package entry

import (
	"testing"

	"github.com/cakecache/cake/attribute"
)

func TestEqualIgnoresAttributes(t *testing.T) {
	a1 := attribute.NewMap()
	_ = attribute.Put(a1, attribute.Hits, int64(3))
	a2 := attribute.NewMap()
	_ = attribute.Put(a2, attribute.Hits, int64(99))

	e1 := New("k", "v", a1)
	e2 := New("k", "v", a2)

	if !Equal(e1, e2, func(a, b string) bool { return a == b }) {
		t.Fatal("entries with equal key/value but different attributes must be equal")
	}
}

func TestEqualDiffersOnValue(t *testing.T) {
	e1 := New("k", "v1", nil)
	e2 := New("k", "v2", nil)
	if Equal(e1, e2, func(a, b string) bool { return a == b }) {
		t.Fatal("entries with different values must not be equal")
	}
}

func TestNewNormalizesNilAttrs(t *testing.T) {
	e := New("k", 1, nil)
	if e.Attributes() == nil {
		t.Fatal("Attributes() must never be nil")
	}
	if attribute.Get(e.Attributes(), attribute.Size) != 1 {
		t.Fatal("default Size must be readable through a normalized empty map")
	}
}
