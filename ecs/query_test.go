package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type Position struct{ X, Y int }
type Velocity struct{ DX, DY int }

func TestQueryReadSingleComponent(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})
	e2 := w.Spawn().Entity()
	AddComponent(w, e2, Position{X: 2})

	q := NewQuery[Position](Read[Position]{})
	got := q.Iter(w)
	require.Len(t, got, 2)
	require.Equal(t, Position{X: 1}, got[0])
	require.Equal(t, Position{X: 2}, got[1])
}

func TestQueryRequiredViewExcludesMissingComponent(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})
	AddComponent(w, e1, Velocity{DX: 1})
	e2 := w.Spawn().Entity()
	AddComponent(w, e2, Position{X: 2}) // no Velocity

	q := NewQuery[Pair2[Position, Velocity]](Tuple2[Position, Velocity](Read[Position]{}, Read[Velocity]{}))
	got := q.Iter(w)
	require.Len(t, got, 1)
	require.Equal(t, Position{X: 1}, got[0].A)
	require.Equal(t, Velocity{DX: 1}, got[0].B)
}

func TestQueryOptionalViewIncludesEntitiesMissingIt(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})
	AddComponent(w, e1, Velocity{DX: 9})
	e2 := w.Spawn().Entity()
	AddComponent(w, e2, Position{X: 2}) // no Velocity
	e3 := w.Spawn().Entity()
	AddComponent(w, e3, Velocity{DX: 3}) // no Position: must be excluded

	q := NewQuery[Pair2[Position, Optional[Velocity]]](
		Tuple2[Position, Optional[Velocity]](Read[Position]{}, TryRead[Velocity]{}),
	)
	got := q.Iter(w)
	require.Len(t, got, 2)

	require.Equal(t, Position{X: 1}, got[0].A)
	require.True(t, got[0].B.Present)
	require.Equal(t, Velocity{DX: 9}, got[0].B.Value)

	require.Equal(t, Position{X: 2}, got[1].A)
	require.False(t, got[1].B.Present)
}

func TestQueryOptionalViewOrderDoesNotAdmitEntitiesLackingRequired(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})
	e2 := w.Spawn().Entity()
	AddComponent(w, e2, Velocity{DX: 1}) // has only the optional component

	// Optional view declared *before* the required one: composition must
	// still exclude e2, regardless of declared order.
	q := NewQuery[Pair2[Optional[Velocity], Position]](
		Tuple2[Optional[Velocity], Position](TryRead[Velocity]{}, Read[Position]{}),
	)
	got := q.Iter(w)
	require.Len(t, got, 1)
	require.Equal(t, Position{X: 1}, got[0].B)
}

func TestQueryEntitiesView(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})

	q := NewQuery[Pair2[Entity, Position]](Tuple2[Entity, Position](Entities, Read[Position]{}))
	got := q.Iter(w)
	require.Len(t, got, 1)
	require.Equal(t, e1, got[0].A)
}

func TestQueryWriteMutatesThroughPointer(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})

	q := NewQuery[*Position](Write[Position]{})
	got := q.Iter(w)
	require.Len(t, got, 1)
	got[0].X = 100

	readBack, ok := Get[Position](w.Components(), e1)
	require.True(t, ok)
	require.Equal(t, 100, readBack.X)
}

func TestQueryEmptyWorldYieldsEmptySlice(t *testing.T) {
	w := NewWorld()
	q := NewQuery[Position](Read[Position]{})
	got := q.Iter(w)
	require.Empty(t, got)
}

func TestQueryNeverInsertedComponentYieldsEmptySlice(t *testing.T) {
	w := NewWorld()
	w.Spawn()
	q := NewQuery[Position](Read[Position]{})
	got := q.Iter(w)
	require.Empty(t, got)
}

func TestQueryDespawnedEntityExcluded(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn().Entity()
	AddComponent(w, e1, Position{X: 1})
	w.Despawn(e1)

	q := NewQuery[Position](Read[Position]{})
	got := q.Iter(w)
	require.Empty(t, got)
}
