package storage

import "github.com/bits-and-blooms/bitset"

// SparseArray is a direct-addressed vector from a u32-ish index to an
// optional value of type V, grown on demand to cover the largest index ever
// inserted. A companion BitSet (see Bits) is the authoritative membership
// oracle: it is what query composition intersects/unions, not the slice
// itself, so callers that only need "does this index have a value" should
// prefer the bitset over Get.
type SparseArray[V any] struct {
	slots []V
	bits  bitset.BitSet
}

// NewSparseArray returns an empty SparseArray.
func NewSparseArray[V any]() *SparseArray[V] {
	return &SparseArray[V]{}
}

// Bits returns the membership bitset. Bit i is set iff index i holds a
// value. This is the operand query composition ANDs/ORs together (spec
// §4.6); mutating it directly is the caller's responsibility to avoid.
func (s *SparseArray[V]) Bits() *bitset.BitSet { return &s.bits }

// Insert records v at index i, growing the backing slice if needed.
func (s *SparseArray[V]) Insert(i uint32, v V) {
	idx := int(i)
	if idx >= len(s.slots) {
		grown := make([]V, idx+1)
		copy(grown, s.slots)
		s.slots = grown
	}
	s.slots[idx] = v
	s.bits.Set(uint(i))
}

// Remove clears the value and membership bit at index i. The slice slot
// itself is zeroed, so a removed value is not retrievable by a stale Get.
func (s *SparseArray[V]) Remove(i uint32) {
	idx := int(i)
	if idx < len(s.slots) {
		var zero V
		s.slots[idx] = zero
	}
	s.bits.Clear(uint(i))
}

// Get returns the value at i and whether it is present.
func (s *SparseArray[V]) Get(i uint32) (V, bool) {
	idx := int(i)
	if idx >= len(s.slots) || !s.bits.Test(uint(i)) {
		var zero V
		return zero, false
	}
	return s.slots[idx], true
}

// Has reports whether index i is populated.
func (s *SparseArray[V]) Has(i uint32) bool { return s.bits.Test(uint(i)) }
