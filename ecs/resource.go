package ecs

import (
	"reflect"
	"sync"
)

// resourceCell holds one resource value plus a runtime borrow counter:
// zero means unborrowed, a positive count means that many outstanding
// shared (Read) borrows, -1 means one outstanding exclusive (Write)
// borrow. Ported from the original's AtomicRefCell-backed ResourceCell,
// which panics on a borrow conflict rather than blocking — resources are
// meant to be borrowed for the duration of one system call, not held
// across a yield point.
type resourceCell struct {
	mu      sync.Mutex
	value   any
	borrows int
}

func (c *resourceCell) borrowShared() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrows < 0 {
		panic(newFatalError(ErrResourceBorrow, "resource already borrowed exclusively"))
	}
	c.borrows++
}

func (c *resourceCell) releaseShared() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.borrows--
}

func (c *resourceCell) borrowExclusive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrows != 0 {
		panic(newFatalError(ErrResourceBorrow, "resource already borrowed"))
	}
	c.borrows = -1
}

func (c *resourceCell) releaseExclusive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.borrows = 0
}

// ResourceStore is a type-keyed singleton map, one slot per Go type, each
// guarded by its own runtime borrow check (spec §4.7: "runtime-checked
// exclusive-xor-shared borrow cells", ported from the original's
// Resources/AtomicRefCell pair). Systems obtain a ResourceRef/ResourceMut
// guard, use it, and Release it before the stage moves on; holding one
// across a concurrent borrow of the same type panics with FatalError.
type ResourceStore struct {
	mu    sync.Mutex
	cells map[reflect.Type]*resourceCell
}

// NewResourceStore returns an empty resource store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{cells: make(map[reflect.Type]*resourceCell)}
}

func (rs *ResourceStore) cellFor(t reflect.Type) *resourceCell {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	c, ok := rs.cells[t]
	if !ok {
		c = &resourceCell{}
		rs.cells[t] = c
	}
	return c
}

// InsertResource stores value as the singleton instance of type T,
// replacing any existing one. Panics if T is currently borrowed. The
// cell always holds a *T internally so WriteResource can hand back a
// pointer good for in-place mutation.
func InsertResource[T any](rs *ResourceStore, value T) {
	c := rs.cellFor(typeOf[T]())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrows != 0 {
		panic(newFatalError(ErrResourceBorrow, "cannot replace a borrowed resource"))
	}
	boxed := value
	c.value = &boxed
}

// HasResource reports whether a value of type T has been inserted.
func HasResource[T any](rs *ResourceStore) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	c, ok := rs.cells[typeOf[T]()]
	if !ok {
		return false
	}
	_, has := c.value.(*T)
	return has
}

// ResourceRef is a released-once shared borrow of a resource.
type ResourceRef[T any] struct {
	cell *resourceCell
}

// Get returns the borrowed value. Valid until Release is called.
func (r ResourceRef[T]) Get() T { return *r.cell.value.(*T) }

// Release ends the shared borrow.
func (r ResourceRef[T]) Release() { r.cell.releaseShared() }

// ReadResource takes a shared borrow on type T's singleton. Panics via
// FatalError(ErrResourceMissing) if no value of T was ever inserted, or
// FatalError(ErrResourceBorrow) if T is currently borrowed exclusively.
func ReadResource[T any](rs *ResourceStore) ResourceRef[T] {
	c := rs.cellFor(typeOf[T]())
	if !resourceCellHasType[T](c) {
		panic(newFatalErrorf(ErrResourceMissing, "resource %s not present", typeOf[T]()))
	}
	c.borrowShared()
	return ResourceRef[T]{cell: c}
}

// ResourceMut is a released-once exclusive borrow of a resource.
type ResourceMut[T any] struct {
	cell *resourceCell
}

// Get returns a pointer to the borrowed value, permitting in-place
// mutation. Valid until Release is called.
func (r ResourceMut[T]) Get() *T { return r.cell.value.(*T) }

// Set replaces the borrowed value outright.
func (r ResourceMut[T]) Set(value T) {
	boxed := value
	r.cell.value = &boxed
}

// Release ends the exclusive borrow.
func (r ResourceMut[T]) Release() { r.cell.releaseExclusive() }

// WriteResource takes an exclusive borrow on type T's singleton.
func WriteResource[T any](rs *ResourceStore) ResourceMut[T] {
	c := rs.cellFor(typeOf[T]())
	if !resourceCellHasType[T](c) {
		panic(newFatalErrorf(ErrResourceMissing, "resource %s not present", typeOf[T]()))
	}
	c.borrowExclusive()
	return ResourceMut[T]{cell: c}
}

func resourceCellHasType[T any](c *resourceCell) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.value.(*T)
	return ok
}

// GetOrInsertResource returns a pointer to type T's singleton, inserting the
// result of insert() first if none exists yet (spec §4.7:
// get_or_insert_with<R,F>). Unlike ReadResource/WriteResource this does not
// take a tracked borrow: the original's version takes &mut self on the
// whole Resources map rather than borrowing one AtomicRefCell, so there is
// nothing else that could be racing it within the same call.
func GetOrInsertResource[T any](rs *ResourceStore, insert func() T) *T {
	c := rs.cellFor(typeOf[T]())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		boxed := insert()
		c.value = &boxed
	}
	return c.value.(*T)
}

// RemoveResource takes type T's singleton out of the store and returns it,
// or the zero value and false if none was present (spec §4.7: remove<R>).
// Panics via FatalError(ErrResourceBorrow) if T is currently borrowed.
func RemoveResource[T any](rs *ResourceStore) (T, bool) {
	t := typeOf[T]()

	rs.mu.Lock()
	c, ok := rs.cells[t]
	rs.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrows != 0 {
		panic(newFatalError(ErrResourceBorrow, "cannot remove a borrowed resource"))
	}
	boxed, ok := c.value.(*T)
	if !ok {
		var zero T
		return zero, false
	}
	c.value = nil

	rs.mu.Lock()
	delete(rs.cells, t)
	rs.mu.Unlock()

	return *boxed, true
}
