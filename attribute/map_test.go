package attribute

import "testing"

func TestGetDefaultWhenUnset(t *testing.T) {
	m := NewMap()
	if got := Get(m, Size); got != 1 {
		t.Fatalf("Size default = %d, want 1", got)
	}
	custom := New("label", "unset", nil)
	if got := Get(m, custom); got != "unset" {
		t.Fatalf("custom default = %q, want %q", got, "unset")
	}
}

func TestPutGetRoundTripPrimitive(t *testing.T) {
	m := NewMap()
	if err := Put(m, Size, int64(42)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := Get(m, Size); got != 42 {
		t.Fatalf("Get after Put = %d, want 42", got)
	}
	if !m.Contains(Size) {
		t.Fatal("Contains should be true after Put")
	}
}

func TestPutInvalidValueRejected(t *testing.T) {
	m := NewMap()
	if err := Put(m, Size, int64(-1)); err != ErrInvalidValue {
		t.Fatalf("Put negative Size: err = %v, want ErrInvalidValue", err)
	}
	if m.Contains(Size) {
		t.Fatal("invalid Put must not leave a value behind")
	}
}

func TestEmptyIsImmutable(t *testing.T) {
	if err := Put(Empty(), Size, int64(5)); err != ErrImmutable {
		t.Fatalf("Put on Empty(): err = %v, want ErrImmutable", err)
	}
	if Empty().Len() != 0 {
		t.Fatal("Empty() must stay empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMap()
	_ = Put(m, Size, int64(7))
	_ = Put(m, New("label", "x", nil), "y")

	c := m.Clone()
	_ = Put(c, Size, int64(99))

	if got := Get(m, Size); got != 7 {
		t.Fatalf("original mutated via clone: Size = %d, want 7", got)
	}
	if got := Get(c, Size); got != 99 {
		t.Fatalf("clone Size = %d, want 99", got)
	}
}

func TestIdentityEquality(t *testing.T) {
	a := New("dup-name", 0, nil)
	b := New("dup-name", 0, nil)
	m := NewMap()
	_ = Put(m, a, 1)
	_ = Put(m, b, 2)
	if Get(m, a) != 1 || Get(m, b) != 2 {
		t.Fatal("attributes with the same name but distinct identity must not alias")
	}
}

func TestRangeVisitsAllSetAttributes(t *testing.T) {
	m := NewMap()
	_ = Put(m, Size, int64(3))
	_ = Put(m, Cost, 1.5)
	seen := map[string]any{}
	Range(m, func(d Descriptor, v any) bool {
		seen[d.Name()] = v
		return true
	})
	if len(seen) != 2 {
		t.Fatalf("Range saw %d attributes, want 2", len(seen))
	}
}
