// Package attribute provides typed, keyed metadata slots ("attributes")
// that can be attached to a cache entry. An Attribute[T] is a process-wide
// descriptor: equality is by pointer identity, not by name, mirroring how
// context.Context keys are conventionally declared as package-level values.
package attribute

// Kind tags the primitive specialization of an attribute, if any. Kind lets
// a Map route a value to its unboxed primitive slot instead of an `any`
// slot, without needing reflection at lookup time.
type Kind uint8

const (
	// KindGeneric covers any attribute whose value is stored boxed in an
	// `any` slot — the common case for non-primitive attribute types.
	KindGeneric Kind = iota
	KindBool
	KindByte
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
)

// Descriptor is the non-generic face of an Attribute[T]. It is what Map uses
// as an index and what policy registration (policy.AttrDep) carries, since a
// dependency list can't be homogeneous over T otherwise.
type Descriptor interface {
	Name() string
	Kind() Kind
}

// Attribute is a typed metadata descriptor: a name, a primitive Kind (or
// KindGeneric), a default value returned for entries that never set it, and
// a validity predicate that Put enforces before accepting a value.
//
// Attributes are meant to be declared once as package-level variables and
// shared by pointer; two distinct *Attribute[T] values are never considered
// the same slot even if their Name is identical.
type Attribute[T any] struct {
	name    string
	kind    Kind
	def     T
	isValid func(T) bool
}

// New declares a generic (non-primitive) attribute.
func New[T any](name string, def T, isValid func(T) bool) *Attribute[T] {
	return &Attribute[T]{name: name, kind: KindGeneric, def: def, isValid: isValid}
}

func newPrimitive[T any](name string, kind Kind, def T, isValid func(T) bool) *Attribute[T] {
	return &Attribute[T]{name: name, kind: kind, def: def, isValid: isValid}
}

// NewBool declares a primitive bool attribute.
func NewBool(name string, def bool, isValid func(bool) bool) *Attribute[bool] {
	return newPrimitive(name, KindBool, def, isValid)
}

// NewByte declares a primitive byte (uint8) attribute.
func NewByte(name string, def byte, isValid func(byte) bool) *Attribute[byte] {
	return newPrimitive(name, KindByte, def, isValid)
}

// NewInt16 declares a primitive int16 (Java `short`) attribute.
func NewInt16(name string, def int16, isValid func(int16) bool) *Attribute[int16] {
	return newPrimitive(name, KindInt16, def, isValid)
}

// NewInt32 declares a primitive int32 (Java `int`) attribute.
func NewInt32(name string, def int32, isValid func(int32) bool) *Attribute[int32] {
	return newPrimitive(name, KindInt32, def, isValid)
}

// NewInt64 declares a primitive int64 (Java `long`) attribute.
func NewInt64(name string, def int64, isValid func(int64) bool) *Attribute[int64] {
	return newPrimitive(name, KindInt64, def, isValid)
}

// NewFloat32 declares a primitive float32 attribute.
func NewFloat32(name string, def float32, isValid func(float32) bool) *Attribute[float32] {
	return newPrimitive(name, KindFloat32, def, isValid)
}

// NewFloat64 declares a primitive float64 (Java `double`) attribute.
func NewFloat64(name string, def float64, isValid func(float64) bool) *Attribute[float64] {
	return newPrimitive(name, KindFloat64, def, isValid)
}

// Name returns the attribute's display name. Not used for identity.
func (a *Attribute[T]) Name() string { return a.name }

// Kind returns the attribute's primitive specialization, or KindGeneric.
func (a *Attribute[T]) Kind() Kind { return a.kind }

// Default returns the value reported for entries that never set this
// attribute.
func (a *Attribute[T]) Default() T { return a.def }

// Valid reports whether v may be stored under this attribute.
func (a *Attribute[T]) Valid(v T) bool {
	return a.isValid == nil || a.isValid(v)
}

// Well-known attributes shared by the store and the policies it hosts.
var (
	// Size is the byte-volume contribution of an entry; defaults to 1 so
	// that an unconfigured Size turns count-based and volume-based limits
	// into the same thing.
	Size = NewInt64("size", 1, func(v int64) bool { return v >= 0 })

	// Hits counts read-hits on an entry; bumped by the default
	// AttributeService on every access.
	Hits = NewInt64("hits", 0, func(v int64) bool { return v >= 0 })

	// Cost is a caller-defined weight, independent of Size, available for
	// evictors that want to sort by something other than volume.
	Cost = NewFloat64("cost", 0, nil)

	// Timestamp is the UnixNano of an entry's most recent create/access.
	Timestamp = NewInt64("timestamp", 0, nil)
)
