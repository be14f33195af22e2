package ecs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorAllocIsLive(t *testing.T) {
	a := NewAllocator()
	e := a.Alloc()
	require.True(t, a.IsLive(e))
	require.EqualValues(t, 0, e.Index)
	require.EqualValues(t, 0, e.Generation)
}

func TestAllocatorDeallocBumpsGenerationAndRecycles(t *testing.T) {
	a := NewAllocator()
	e1 := a.Alloc()

	_, ok := a.Dealloc(e1)
	require.True(t, ok)
	require.False(t, a.IsLive(e1))

	e2 := a.Alloc()
	require.Equal(t, e1.Index, e2.Index)
	require.Equal(t, e1.Generation+1, e2.Generation)

	// The stale id must never be considered live again.
	require.False(t, a.IsLive(e1))
	require.True(t, a.IsLive(e2))
}

func TestAllocatorDeallocReturnsOwnedComponentTypes(t *testing.T) {
	a := NewAllocator()
	e := a.Alloc()

	type Foo struct{}
	type Bar struct{}
	a.recordComponent(e, typeOf[Foo]())
	a.recordComponent(e, typeOf[Bar]())

	owned, ok := a.Dealloc(e)
	require.True(t, ok)
	require.Len(t, owned, 2)
	_, hasFoo := owned[typeOf[Foo]()]
	_, hasBar := owned[typeOf[Bar]()]
	require.True(t, hasFoo)
	require.True(t, hasBar)
}

func TestAllocatorDeallocTwiceIsNoop(t *testing.T) {
	a := NewAllocator()
	e := a.Alloc()
	_, ok := a.Dealloc(e)
	require.True(t, ok)

	_, ok = a.Dealloc(e)
	require.False(t, ok)
}

func TestAllocatorIsLiveRejectsOutOfRangeAndWrongGeneration(t *testing.T) {
	a := NewAllocator()
	require.False(t, a.IsLive(Entity{Index: 99}))

	e := a.Alloc()
	stale := Entity{Index: e.Index, Generation: e.Generation + 1}
	require.False(t, a.IsLive(stale))
}

func TestAllocatorReserveThenFlushMaterialises(t *testing.T) {
	a := NewAllocator()
	r := a.Reserve()
	require.False(t, a.IsLive(r))

	a.Flush()
	require.True(t, a.IsLive(r))
}

func TestAllocatorReserveReusesFreeListOnFlush(t *testing.T) {
	a := NewAllocator()
	e := a.Alloc()
	a.Dealloc(e)

	r := a.Reserve()
	require.Equal(t, e.Index, r.Index)
	require.Equal(t, e.Generation+1, r.Generation)

	a.Flush()
	require.True(t, a.IsLive(r))
}

// P10: N concurrent Reserve calls return N pairwise distinct entities.
func TestAllocatorConcurrentReserveUniqueness(t *testing.T) {
	a := NewAllocator()
	const n = 500

	results := make([]Entity, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i] = a.Reserve()
		}()
	}
	wg.Wait()
	a.Flush()

	seen := make(map[Entity]struct{}, n)
	for _, e := range results {
		_, dup := seen[e]
		require.False(t, dup, "duplicate reserved entity %+v", e)
		seen[e] = struct{}{}
		require.True(t, a.IsLive(e))
	}
	require.Len(t, seen, n)
}

func TestAllocatorLiveBitsMatchesIsLive(t *testing.T) {
	a := NewAllocator()
	e1 := a.Alloc()
	e2 := a.Alloc()
	e3 := a.Alloc()
	a.Dealloc(e2)

	bits := a.LiveBits()
	require.True(t, bits.Test(uint(e1.Index)))
	require.False(t, bits.Test(uint(e2.Index)))
	require.True(t, bits.Test(uint(e3.Index)))
}

func TestAllocatorEntityAt(t *testing.T) {
	a := NewAllocator()
	e := a.Alloc()

	got, ok := a.EntityAt(e.Index)
	require.True(t, ok)
	require.Equal(t, e, got)

	a.Dealloc(e)
	_, ok = a.EntityAt(e.Index)
	require.False(t, ok)
}
