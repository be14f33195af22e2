package asset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type texture struct{ path string }

func TestDaemonFreesAssetWhenLastStrongHandleReleased(t *testing.T) {
	d := NewDaemon()
	var freed []HandleID
	Register[texture](d, func(id HandleID) { freed = append(freed, id) })

	id := NewHandleID[texture]()
	h := NewStrongHandle[texture](d, id)
	d.Drain()
	require.Equal(t, 1, d.RefCount(id))

	h.Release()
	d.Drain()
	require.Empty(t, d.RefCount(id))
	require.Equal(t, []HandleID{id}, freed)
}

func TestDaemonKeepsAssetAliveWhileAnyStrongHandleRemains(t *testing.T) {
	d := NewDaemon()
	var freed int
	Register[texture](d, func(id HandleID) { freed++ })

	id := NewHandleID[texture]()
	h1 := NewStrongHandle[texture](d, id)
	h2 := h1.Clone()
	d.Drain()
	require.Equal(t, 2, d.RefCount(id))

	h1.Release()
	d.Drain()
	require.Equal(t, 0, freed)
	require.Equal(t, 1, d.RefCount(id))

	h2.Release()
	d.Drain()
	require.Equal(t, 1, freed)
}

func TestWeakHandleNeverIncrementsRefCount(t *testing.T) {
	d := NewDaemon()
	Register[texture](d, func(id HandleID) {})

	id := NewHandleID[texture]()
	weak := NewWeakHandle[texture](id)
	require.True(t, weak.IsWeak())
	weak.Release() // no-op, nothing queued
	d.Drain()
	require.Equal(t, 0, d.RefCount(id))
}

func TestHandleCloseWeakDoesNotKeepAssetAlive(t *testing.T) {
	d := NewDaemon()
	var freed int
	Register[texture](d, func(id HandleID) { freed++ })

	id := NewHandleID[texture]()
	strong := NewStrongHandle[texture](d, id)
	weakView := strong.CloseWeak()
	require.True(t, weakView.IsWeak())

	strong.Release()
	d.Drain()
	require.Equal(t, 1, freed)
}
