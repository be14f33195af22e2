package ecs

import "github.com/bits-and-blooms/bitset"

// View is a compile-time description of one column access: whether it is
// required or optional, and whether it borrows the row for reading or
// writing (spec §4.6). filter narrows (or leaves untouched) the running
// bitset a query composes from; fetch recovers this view's Item for one
// entity known to have survived that filter.
type View[Item any] interface {
	filter(bits *bitset.BitSet, cs *ComponentStore)
	fetch(e Entity, cs *ComponentStore) Item
}

// Read is a required, shared-borrow view of component T: the entity must
// have T, and fetch returns a copy of its current value.
type Read[T any] struct{}

func (Read[T]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	bits.InPlaceIntersection(Bits[T](cs))
}

func (Read[T]) fetch(e Entity, cs *ComponentStore) T {
	p := Ptr[T](cs, e)
	if p == nil {
		panic(newFatalError(ErrQueryFetchMissingRow, "required component row absent after filter"))
	}
	return *p
}

// Write is a required, exclusive-borrow view of component T: the entity
// must have T, and fetch returns a pointer permitting mutation in place.
type Write[T any] struct{}

func (Write[T]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	bits.InPlaceIntersection(Bits[T](cs))
}

func (Write[T]) fetch(e Entity, cs *ComponentStore) *T {
	p := Ptr[T](cs, e)
	if p == nil {
		panic(newFatalError(ErrQueryFetchMissingRow, "required component row absent after filter"))
	}
	return p
}

// TryRead is an optional, shared-borrow view of component T: entities
// without T are not excluded, and fetch returns (value, false) for them.
//
// The source's filter op unions the component's bitset into the running
// filter (spec §4.6 table). Applied left-to-right across a tuple that
// mixes required and optional views, a literal union can re-admit entities
// a prior required intersection excluded — violating P6. TryRead/TryWrite
// contribute nothing to the running filter instead, which is equivalent
// to unioning against the untouched live set (always a no-op, since live
// is already a superset) and keeps composition order-independent.
type TryRead[T any] struct{}

func (TryRead[T]) filter(bits *bitset.BitSet, cs *ComponentStore) {}

func (TryRead[T]) fetch(e Entity, cs *ComponentStore) Optional[T] {
	v, ok := Get[T](cs, e)
	return Optional[T]{Value: v, Present: ok}
}

// TryWrite is the exclusive-borrow counterpart of TryRead.
type TryWrite[T any] struct{}

func (TryWrite[T]) filter(bits *bitset.BitSet, cs *ComponentStore) {}

func (TryWrite[T]) fetch(e Entity, cs *ComponentStore) OptionalPtr[T] {
	return OptionalPtr[T]{Ptr: Ptr[T](cs, e)}
}

// Optional carries a TryRead result: Present is false when the entity had
// no row for the component, in which case Value is the zero value.
type Optional[T any] struct {
	Value   T
	Present bool
}

// OptionalPtr carries a TryWrite result: Ptr is nil when the entity had no
// row for the component.
type OptionalPtr[T any] struct {
	Ptr *T
}

// EntitiesView yields the entity id itself, contributing no filtering.
type EntitiesView struct{}

func (EntitiesView) filter(bits *bitset.BitSet, cs *ComponentStore) {}
func (EntitiesView) fetch(e Entity, cs *ComponentStore) Entity     { return e }

// Entities is the canonical EntitiesView value, for use as a tuple member:
// ecs.Tuple2[ecs.Entity, Position](ecs.Entities, ecs.Read[Position]{}).
var Entities = EntitiesView{}
