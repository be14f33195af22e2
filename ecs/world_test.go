package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddComponentNoopOnDeadEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Entity()
	w.Despawn(e)

	AddComponent[Position](w, e, Position{X: 1, Y: 1})
	_, ok := Get[Position](w.Components(), e)
	require.False(t, ok)
}

// RemoveComponent must not touch live rows belonging to an entity that
// recycled a dead entity's index: a stale Entity is identified purely by
// raw index in the underlying sparse set, so without a liveness guard a
// call keyed on the dead id silently deletes the new occupant's row.
func TestRemoveComponentNoopOnDeadEntityDoesNotClobberRecycledIndex(t *testing.T) {
	w := NewWorld()

	e0 := w.Spawn().Entity()
	AddComponent[Position](w, e0, Position{X: 1, Y: 1})
	w.Despawn(e0)

	e1 := w.Spawn().Entity()
	require.Equal(t, e0.Index, e1.Index)
	require.NotEqual(t, e0.Generation, e1.Generation)
	AddComponent[Position](w, e1, Position{X: 9, Y: 9})

	RemoveComponent[Position](w, e0)

	_, ok := Get[Position](w.Components(), e1)
	require.True(t, ok)
}
