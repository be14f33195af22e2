package ecs

import "github.com/bits-and-blooms/bitset"

// Query composes one View into a reusable request: fetch every live entity
// whose rows the view's filter admits, in ascending index order (spec §4.6,
// P5). A Query is stateless and safe to Iter repeatedly against different
// worlds or the same world at different points in time.
type Query[Item any] struct {
	view View[Item]
}

// NewQuery wraps a view (typically built with the Tuple2..Tuple8
// constructors below, or a bare Read/Write/TryRead/TryWrite/Entities for a
// single-column query) into a Query.
func NewQuery[Item any](view View[Item]) *Query[Item] {
	return &Query[Item]{view: view}
}

// Iter runs the query against world: starts from the live-entity bitset,
// narrows it by the view's filter, and fetches each surviving row in
// ascending entity-index order. An entity whose bit survives the filter
// but is no longer live (despawned between snapshot and fetch) is skipped
// rather than fetched, matching the original's stale-bit tolerance.
func (q *Query[Item]) Iter(world *World) []Item {
	bits := world.Allocator().LiveBits()
	q.view.filter(bits, world.Components())

	result := make([]Item, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		e, isLive := world.Allocator().EntityAt(uint32(i))
		if !isLive {
			continue
		}
		result = append(result, q.view.fetch(e, world.Components()))
	}
	return result
}

// Pair2 through Pair8 are the fetch results of the corresponding
// TupleN view. Arities beyond 8 compose by nesting — a Pair2 whose B is
// itself a Pair8 reaches arity 9, and so on — rather than by a hand-written
// TupleN for every N (spec §9 supplemented features: "variadic view tuples
// arity 1-8 + fallback").
type Pair2[A, B any] struct {
	A A
	B B
}

type Pair3[A, B, C any] struct {
	A A
	B B
	C C
}

type Pair4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

type Pair5[A, B, C, D, E any] struct {
	A A
	B B
	C C
	D D
	E E
}

type Pair6[A, B, C, D, E, F any] struct {
	A A
	B B
	C C
	D D
	E E
	F F
}

type Pair7[A, B, C, D, E, F, G any] struct {
	A A
	B B
	C C
	D D
	E E
	F F
	G G
}

type Pair8[A, B, C, D, E, F, G, H any] struct {
	A A
	B B
	C C
	D D
	E E
	F F
	G G
	H H
}

type tuple2[A, B any] struct {
	va View[A]
	vb View[B]
}

func (t tuple2[A, B]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
}

func (t tuple2[A, B]) fetch(e Entity, cs *ComponentStore) Pair2[A, B] {
	return Pair2[A, B]{A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs)}
}

// Tuple2 composes two views into one, applying their filters in the
// declared order (left to right) on a single shared bitset, matching the
// source's tuple_impl! macro (crates/app/src/filter.rs).
func Tuple2[A, B any](a View[A], b View[B]) View[Pair2[A, B]] {
	return tuple2[A, B]{va: a, vb: b}
}

type tuple3[A, B, C any] struct {
	va View[A]
	vb View[B]
	vc View[C]
}

func (t tuple3[A, B, C]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
}

func (t tuple3[A, B, C]) fetch(e Entity, cs *ComponentStore) Pair3[A, B, C] {
	return Pair3[A, B, C]{A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs)}
}

func Tuple3[A, B, C any](a View[A], b View[B], c View[C]) View[Pair3[A, B, C]] {
	return tuple3[A, B, C]{va: a, vb: b, vc: c}
}

type tuple4[A, B, C, D any] struct {
	va View[A]
	vb View[B]
	vc View[C]
	vd View[D]
}

func (t tuple4[A, B, C, D]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
	t.vd.filter(bits, cs)
}

func (t tuple4[A, B, C, D]) fetch(e Entity, cs *ComponentStore) Pair4[A, B, C, D] {
	return Pair4[A, B, C, D]{A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs), D: t.vd.fetch(e, cs)}
}

func Tuple4[A, B, C, D any](a View[A], b View[B], c View[C], d View[D]) View[Pair4[A, B, C, D]] {
	return tuple4[A, B, C, D]{va: a, vb: b, vc: c, vd: d}
}

type tuple5[A, B, C, D, E any] struct {
	va View[A]
	vb View[B]
	vc View[C]
	vd View[D]
	ve View[E]
}

func (t tuple5[A, B, C, D, E]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
	t.vd.filter(bits, cs)
	t.ve.filter(bits, cs)
}

func (t tuple5[A, B, C, D, E]) fetch(e Entity, cs *ComponentStore) Pair5[A, B, C, D, E] {
	return Pair5[A, B, C, D, E]{
		A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs),
		D: t.vd.fetch(e, cs), E: t.ve.fetch(e, cs),
	}
}

func Tuple5[A, B, C, D, E any](a View[A], b View[B], c View[C], d View[D], e View[E]) View[Pair5[A, B, C, D, E]] {
	return tuple5[A, B, C, D, E]{va: a, vb: b, vc: c, vd: d, ve: e}
}

type tuple6[A, B, C, D, E, F any] struct {
	va View[A]
	vb View[B]
	vc View[C]
	vd View[D]
	ve View[E]
	vf View[F]
}

func (t tuple6[A, B, C, D, E, F]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
	t.vd.filter(bits, cs)
	t.ve.filter(bits, cs)
	t.vf.filter(bits, cs)
}

func (t tuple6[A, B, C, D, E, F]) fetch(e Entity, cs *ComponentStore) Pair6[A, B, C, D, E, F] {
	return Pair6[A, B, C, D, E, F]{
		A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs),
		D: t.vd.fetch(e, cs), E: t.ve.fetch(e, cs), F: t.vf.fetch(e, cs),
	}
}

func Tuple6[A, B, C, D, E, F any](a View[A], b View[B], c View[C], d View[D], e View[E], f View[F]) View[Pair6[A, B, C, D, E, F]] {
	return tuple6[A, B, C, D, E, F]{va: a, vb: b, vc: c, vd: d, ve: e, vf: f}
}

type tuple7[A, B, C, D, E, F, G any] struct {
	va View[A]
	vb View[B]
	vc View[C]
	vd View[D]
	ve View[E]
	vf View[F]
	vg View[G]
}

func (t tuple7[A, B, C, D, E, F, G]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
	t.vd.filter(bits, cs)
	t.ve.filter(bits, cs)
	t.vf.filter(bits, cs)
	t.vg.filter(bits, cs)
}

func (t tuple7[A, B, C, D, E, F, G]) fetch(e Entity, cs *ComponentStore) Pair7[A, B, C, D, E, F, G] {
	return Pair7[A, B, C, D, E, F, G]{
		A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs),
		D: t.vd.fetch(e, cs), E: t.ve.fetch(e, cs), F: t.vf.fetch(e, cs), G: t.vg.fetch(e, cs),
	}
}

func Tuple7[A, B, C, D, E, F, G any](a View[A], b View[B], c View[C], d View[D], e View[E], f View[F], g View[G]) View[Pair7[A, B, C, D, E, F, G]] {
	return tuple7[A, B, C, D, E, F, G]{va: a, vb: b, vc: c, vd: d, ve: e, vf: f, vg: g}
}

type tuple8[A, B, C, D, E, F, G, H any] struct {
	va View[A]
	vb View[B]
	vc View[C]
	vd View[D]
	ve View[E]
	vf View[F]
	vg View[G]
	vh View[H]
}

func (t tuple8[A, B, C, D, E, F, G, H]) filter(bits *bitset.BitSet, cs *ComponentStore) {
	t.va.filter(bits, cs)
	t.vb.filter(bits, cs)
	t.vc.filter(bits, cs)
	t.vd.filter(bits, cs)
	t.ve.filter(bits, cs)
	t.vf.filter(bits, cs)
	t.vg.filter(bits, cs)
	t.vh.filter(bits, cs)
}

func (t tuple8[A, B, C, D, E, F, G, H]) fetch(e Entity, cs *ComponentStore) Pair8[A, B, C, D, E, F, G, H] {
	return Pair8[A, B, C, D, E, F, G, H]{
		A: t.va.fetch(e, cs), B: t.vb.fetch(e, cs), C: t.vc.fetch(e, cs), D: t.vd.fetch(e, cs),
		E: t.ve.fetch(e, cs), F: t.vf.fetch(e, cs), G: t.vg.fetch(e, cs), H: t.vh.fetch(e, cs),
	}
}

func Tuple8[A, B, C, D, E, F, G, H any](
	a View[A], b View[B], c View[C], d View[D], e View[E], f View[F], g View[G], h View[H],
) View[Pair8[A, B, C, D, E, F, G, H]] {
	return tuple8[A, B, C, D, E, F, G, H]{va: a, vb: b, vc: c, vd: d, ve: e, vf: f, vg: g, vh: h}
}
