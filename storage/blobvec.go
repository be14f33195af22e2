// Package storage holds the dense/sparse plumbing that backs one component
// type's rows: a contiguous, swap-removable vector (BlobVec), a sparse
// index from entity slot to dense position (SparseArray), and the bitset
// that is the authoritative membership oracle for query composition.
package storage

// BlobVec is a contiguous, swap-removable vector of values of type T.
//
// The source design stores components as type-erased bytes behind a
// manually-managed drop function pointer, so that one allocator routine can
// serve every component type. Go generics give us the same "one routine,
// every type" property without unsafe byte copies, so BlobVec is a plain
// generic slice wrapper rather than a raw byte vector. The operation names
// and contracts (push-uninit-then-initialize, replace-with-drop,
// swap-remove-and-forget vs swap-remove-and-drop) are kept so the higher
// layers read the same regardless of which representation backs them.
//
// Dispose, if non-nil, is invoked exactly once for a value that is
// overwritten (Replace) or explicitly dropped (SwapRemoveAndDrop), never for
// a value whose ownership is handed back to the caller (SwapRemoveAndTake).
// Component types that must release an external resource on removal (for
// example an asset.Handle decrementing a refcount) supply Dispose; plain
// data components leave it nil.
type BlobVec[T any] struct {
	data    []T
	dispose func(*T)
}

// NewBlobVec allocates a BlobVec with the given starting capacity. A nil
// dispose is valid and means "no cleanup needed on overwrite or drop".
func NewBlobVec[T any](capacity int, dispose func(*T)) *BlobVec[T] {
	return &BlobVec[T]{
		data:    make([]T, 0, capacity),
		dispose: dispose,
	}
}

// Len returns the number of live slots.
func (v *BlobVec[T]) Len() int { return len(v.data) }

// Cap returns the current backing capacity.
func (v *BlobVec[T]) Cap() int { return cap(v.data) }

// PushUninit reserves one trailing slot and returns its index. The slot
// holds T's zero value until Initialize is called; callers must not read it
// before that.
func (v *BlobVec[T]) PushUninit() int {
	var zero T
	v.data = append(v.data, zero)
	return len(v.data) - 1
}

// Initialize writes val into an uninitialised slot reserved by PushUninit.
// No destructor runs: the slot is assumed to hold no prior value.
func (v *BlobVec[T]) Initialize(i int, val T) {
	v.data[i] = val
}

// Replace disposes whatever slot i currently holds, then writes val in its
// place.
func (v *BlobVec[T]) Replace(i int, val T) {
	if v.dispose != nil {
		v.dispose(&v.data[i])
	}
	v.data[i] = val
}

// Ptr returns a pointer into the backing slice. The pointer is valid only
// until the next structural mutation (Push*, Replace, SwapRemove*, Clear);
// callers must not retain it across those.
func (v *BlobVec[T]) Ptr(i int) *T { return &v.data[i] }

// Get returns a copy of the value at i.
func (v *BlobVec[T]) Get(i int) T { return v.data[i] }

// SwapRemoveAndTake removes slot i by swapping the last element into its
// place, returning the removed value. Ownership of the value transfers to
// the caller; Dispose is deliberately not invoked.
func (v *BlobVec[T]) SwapRemoveAndTake(i int) T {
	last := len(v.data) - 1
	removed := v.data[i]
	if i != last {
		v.data[i] = v.data[last]
	}
	var zero T
	v.data[last] = zero
	v.data = v.data[:last]
	return removed
}

// SwapRemoveAndDrop removes slot i the same way as SwapRemoveAndTake, but
// runs Dispose on the removed value instead of returning it.
func (v *BlobVec[T]) SwapRemoveAndDrop(i int) {
	removed := v.SwapRemoveAndTake(i)
	if v.dispose != nil {
		v.dispose(&removed)
	}
}

// Clear disposes every live slot and resets the vector to empty.
func (v *BlobVec[T]) Clear() {
	if v.dispose != nil {
		for i := range v.data {
			v.dispose(&v.data[i])
		}
	}
	v.data = v.data[:0]
}
