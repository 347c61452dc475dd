package attribute

import "errors"

// ErrInvalidValue is returned by Put when a value fails its attribute's
// validity predicate.
var ErrInvalidValue = errors.New("attribute: invalid value")

// ErrImmutable is returned by Put (and any other mutator) called on Empty().
var ErrImmutable = errors.New("attribute: map is immutable")

// primVal is a tagged union used to store primitive attribute values
// without boxing them into an `any`. Only one field is meaningful, selected
// by kind.
type primVal struct {
	kind Kind
	b    bool
	i64  int64
	f64  float64
}

// Map is a mapping from Attribute descriptors to values attached to one
// entry. Primitive-typed attributes are kept in a dense tagged-union side
// table (prim) so their values never cross an `any` boundary; everything
// else lives in a conventional map (generic). Both maps are nil until first
// written, so a zero Map is cheap and an empty Map allocates nothing.
type Map struct {
	prim    map[Descriptor]primVal
	generic map[Descriptor]any
	frozen  bool
}

var emptyMap = &Map{frozen: true}

// Empty returns the shared immutable empty AttributeMap. Put and the other
// mutators on the returned value fail with ErrImmutable.
func Empty() *Map { return emptyMap }

// NewMap returns a fresh, mutable, empty AttributeMap.
func NewMap() *Map { return &Map{} }

// Len reports the number of attributes explicitly set on m (not counting
// defaults).
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.prim) + len(m.generic)
}

// Contains reports whether a has been explicitly set on m.
func (m *Map) Contains(a Descriptor) bool {
	if m == nil {
		return false
	}
	if a.Kind() != KindGeneric {
		_, ok := m.prim[a]
		return ok
	}
	_, ok := m.generic[a]
	return ok
}

// Clone returns a shallow mutable copy of m. A nil or empty m clones to a
// fresh empty (mutable) Map.
func (m *Map) Clone() *Map {
	out := &Map{}
	if m == nil {
		return out
	}
	if len(m.prim) > 0 {
		out.prim = make(map[Descriptor]primVal, len(m.prim))
		for k, v := range m.prim {
			out.prim[k] = v
		}
	}
	if len(m.generic) > 0 {
		out.generic = make(map[Descriptor]any, len(m.generic))
		for k, v := range m.generic {
			out.generic[k] = v
		}
	}
	return out
}

// Range calls fn for every attribute explicitly set on m, in unspecified
// order, until fn returns false.
func Range(m *Map, fn func(d Descriptor, value any) bool) {
	if m == nil {
		return
	}
	for d, v := range m.prim {
		if !fn(d, primAny(v)) {
			return
		}
	}
	for d, v := range m.generic {
		if !fn(d, v) {
			return
		}
	}
}

func primAny(v primVal) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindByte:
		return byte(v.i64)
	case KindInt16:
		return int16(v.i64)
	case KindInt32:
		return int32(v.i64)
	case KindInt64:
		return v.i64
	case KindFloat32:
		return float32(v.f64)
	case KindFloat64:
		return v.f64
	default:
		return nil
	}
}

// Get returns the value of a in m, or a's default if unset.
func Get[T any](m *Map, a *Attribute[T]) T {
	if m == nil {
		return a.def
	}
	if a.kind == KindGeneric {
		if v, ok := m.generic[a]; ok {
			return v.(T)
		}
		return a.def
	}
	v, ok := m.prim[a]
	if !ok {
		return a.def
	}
	return fromPrim[T](a.kind, v)
}

// GetOr returns the value of a in m, or def if unset (ignoring a's own
// declared default).
func GetOr[T any](m *Map, a *Attribute[T], def T) T {
	if m == nil || !m.Contains(a) {
		return def
	}
	return Get(m, a)
}

// Put sets a's value to v in m. It fails if v does not satisfy a's validity
// predicate, or if m is the immutable Empty() sentinel.
func Put[T any](m *Map, a *Attribute[T], v T) error {
	if m == nil || m.frozen {
		return ErrImmutable
	}
	if !a.Valid(v) {
		return ErrInvalidValue
	}
	if a.kind == KindGeneric {
		if m.generic == nil {
			m.generic = make(map[Descriptor]any)
		}
		m.generic[a] = v
		return nil
	}
	if m.prim == nil {
		m.prim = make(map[Descriptor]primVal)
	}
	m.prim[a] = toPrim(a.kind, v)
	return nil
}

func toPrim[T any](kind Kind, v T) primVal {
	switch kind {
	case KindBool:
		return primVal{kind: kind, b: any(v).(bool)}
	case KindByte:
		return primVal{kind: kind, i64: int64(any(v).(byte))}
	case KindInt16:
		return primVal{kind: kind, i64: int64(any(v).(int16))}
	case KindInt32:
		return primVal{kind: kind, i64: int64(any(v).(int32))}
	case KindInt64:
		return primVal{kind: kind, i64: any(v).(int64)}
	case KindFloat32:
		return primVal{kind: kind, f64: float64(any(v).(float32))}
	case KindFloat64:
		return primVal{kind: kind, f64: any(v).(float64)}
	default:
		panic("attribute: toPrim called with KindGeneric")
	}
}

func fromPrim[T any](kind Kind, v primVal) T {
	var out any
	switch kind {
	case KindBool:
		out = v.b
	case KindByte:
		out = byte(v.i64)
	case KindInt16:
		out = int16(v.i64)
	case KindInt32:
		out = int32(v.i64)
	case KindInt64:
		out = v.i64
	case KindFloat32:
		out = float32(v.f64)
	case KindFloat64:
		out = v.f64
	}
	return out.(T)
}
