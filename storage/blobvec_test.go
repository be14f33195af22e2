package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobVecPushInitialize(t *testing.T) {
	v := NewBlobVec[int](0, nil)
	i := v.PushUninit()
	v.Initialize(i, 5)
	require.Equal(t, 1, v.Len())
	require.Equal(t, 5, v.Get(i))
}

func TestBlobVecReplaceRunsDispose(t *testing.T) {
	var disposedVal int
	v := NewBlobVec[int](0, func(x *int) { disposedVal = *x })
	i := v.PushUninit()
	v.Initialize(i, 1)
	v.Replace(i, 2)

	require.Equal(t, 1, disposedVal)
	require.Equal(t, 2, v.Get(i))
}

func TestBlobVecSwapRemoveAndTake(t *testing.T) {
	v := NewBlobVec[string](0, nil)
	a := v.PushUninit()
	v.Initialize(a, "a")
	b := v.PushUninit()
	v.Initialize(b, "b")
	c := v.PushUninit()
	v.Initialize(c, "c")

	removed := v.SwapRemoveAndTake(a)
	require.Equal(t, "a", removed)
	require.Equal(t, 2, v.Len())
	// "c" (previously last) was swapped into slot a's position.
	require.Equal(t, "c", v.Get(a))
}

func TestBlobVecSwapRemoveAndDrop(t *testing.T) {
	disposed := 0
	v := NewBlobVec[int](0, func(x *int) { disposed++ })
	i := v.PushUninit()
	v.Initialize(i, 1)
	v.SwapRemoveAndDrop(i)
	require.Equal(t, 1, disposed)
	require.Equal(t, 0, v.Len())
}

func TestBlobVecClearRunsDisposeOnEveryLiveSlot(t *testing.T) {
	disposed := 0
	v := NewBlobVec[int](0, func(x *int) { disposed++ })
	for i := 0; i < 3; i++ {
		idx := v.PushUninit()
		v.Initialize(idx, i)
	}
	v.Clear()
	require.Equal(t, 3, disposed)
	require.Equal(t, 0, v.Len())
}

func TestBlobVecPtrAliasesBackingSlot(t *testing.T) {
	v := NewBlobVec[int](0, nil)
	i := v.PushUninit()
	v.Initialize(i, 10)
	p := v.Ptr(i)
	*p = 20
	require.Equal(t, 20, v.Get(i))
}
