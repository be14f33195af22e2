package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSparseArrayInsertGetRemove(t *testing.T) {
	s := NewSparseArray[string]()

	s.Insert(10, "ten")
	got, ok := s.Get(10)
	require.True(t, ok)
	require.Equal(t, "ten", got)
	require.True(t, s.Has(10))

	s.Remove(10)
	require.False(t, s.Has(10))
	_, ok = s.Get(10)
	require.False(t, ok)
}

func TestSparseArrayGetAbsentIsZeroValue(t *testing.T) {
	s := NewSparseArray[int]()
	got, ok := s.Get(3)
	require.False(t, ok)
	require.Zero(t, got)
}

func TestSparseArrayBitsetTracksMembership(t *testing.T) {
	s := NewSparseArray[int]()
	s.Insert(1, 1)
	s.Insert(4, 4)

	require.True(t, s.Bits().Test(1))
	require.True(t, s.Bits().Test(4))
	require.False(t, s.Bits().Test(2))
	require.EqualValues(t, 2, s.Bits().Count())
}

func TestSparseArrayGrowsOnDemand(t *testing.T) {
	s := NewSparseArray[int]()
	s.Insert(1000, 7)
	got, ok := s.Get(1000)
	require.True(t, ok)
	require.Equal(t, 7, got)
}
