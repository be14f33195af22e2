package storage

import "github.com/bits-and-blooms/bitset"

// BlobSparseSet is the dense+sparse pairing that backs one component type:
// a BlobVec holding the actual rows, a SparseArray mapping a u32 index to its
// dense position, and that SparseArray's bitset as the membership oracle.
// At most one value is stored per index.
//
// Invariant (spec I4): for every populated index i, sparse[i] == d implies
// dense.Ptr(d) holds the value inserted for i, and indices[d] == i. Remove
// maintains this by fixing up the sparse entry of whichever element gets
// swapped into the vacated dense slot.
type BlobSparseSet[T any] struct {
	dense   *BlobVec[T]
	sparse  *SparseArray[uint32] // index -> dense position
	indices []uint32            // dense position -> index (reverse map)
}

// NewBlobSparseSet creates an empty set. dispose is forwarded to the
// underlying BlobVec and is invoked on overwrite (Insert over an existing
// index) and on Remove.
func NewBlobSparseSet[T any](dispose func(*T)) *BlobSparseSet[T] {
	return &BlobSparseSet[T]{
		dense:  NewBlobVec[T](0, dispose),
		sparse: NewSparseArray[uint32](),
	}
}

// Bits returns the membership bitset, shared with the sparse index.
func (s *BlobSparseSet[T]) Bits() *bitset.BitSet { return s.sparse.Bits() }

// Len returns the number of stored rows.
func (s *BlobSparseSet[T]) Len() int { return s.dense.Len() }

// Has reports whether index i currently has a row.
func (s *BlobSparseSet[T]) Has(i uint32) bool { return s.sparse.Has(i) }

// Insert writes val for index i. If i already held a value it is replaced
// (the old value disposed); otherwise a new dense row is appended.
func (s *BlobSparseSet[T]) Insert(i uint32, val T) {
	if d, ok := s.sparse.Get(i); ok {
		s.dense.Replace(int(d), val)
		return
	}
	d := s.dense.PushUninit()
	s.dense.Initialize(d, val)
	s.sparse.Insert(i, uint32(d))
	s.indices = append(s.indices, i)
}

// Remove drops the row for index i, if any. The tail row is swapped into
// the vacated dense slot and its sparse entry is rewritten to point at the
// new position, preserving the I4 round-trip invariant.
func (s *BlobSparseSet[T]) Remove(i uint32) {
	d, ok := s.sparse.Get(i)
	if !ok {
		return
	}
	lastPos := s.dense.Len() - 1
	s.dense.SwapRemoveAndDrop(int(d))
	s.sparse.Remove(i)

	if int(d) != lastPos {
		movedIndex := s.indices[lastPos]
		s.indices[d] = movedIndex
		s.sparse.Insert(movedIndex, d)
	}
	s.indices = s.indices[:lastPos]
}

// Get returns a copy of the value at index i, if present.
func (s *BlobSparseSet[T]) Get(i uint32) (T, bool) {
	d, ok := s.sparse.Get(i)
	if !ok {
		var zero T
		return zero, false
	}
	return s.dense.Get(int(d)), true
}

// Ptr returns a raw pointer to the row at index i, or nil if absent. The
// pointer is valid only until the next structural mutation of this set
// (Insert of a new key, or Remove).
func (s *BlobSparseSet[T]) Ptr(i uint32) *T {
	d, ok := s.sparse.Get(i)
	if !ok {
		return nil
	}
	return s.dense.Ptr(int(d))
}

// Indices returns the dense-ordered list of populated indices. The slice is
// owned by the set; callers must not mutate it.
func (s *BlobSparseSet[T]) Indices() []uint32 { return s.indices }

// Clear disposes every row and resets the set to empty.
func (s *BlobSparseSet[T]) Clear() {
	s.dense.Clear()
	s.sparse = NewSparseArray[uint32]()
	s.indices = s.indices[:0]
}
