package ecs

import (
	"reflect"

	"github.com/bits-and-blooms/bitset"
	"github.com/lixenwraith/ecsframe/storage"
)

// typeOf returns the reflect.Type key used to identify component type T,
// without requiring a value of T in hand.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// anyStore is the type-erased operations every component store must
// support so ComponentStore can manage stores uniformly without knowing
// their concrete row type — used by World.despawn's purge and by query
// composition's bitset lookup.
type anyStore interface {
	bits() *bitset.BitSet
	remove(e Entity)
}

// typedStore wraps one component type's BlobSparseSet with the anyStore
// contract.
type typedStore[T any] struct {
	set *storage.BlobSparseSet[T]
}

func newTypedStore[T any]() *typedStore[T] {
	return &typedStore[T]{set: storage.NewBlobSparseSet[T](nil)}
}

func (s *typedStore[T]) bits() *bitset.BitSet { return s.set.Bits() }
func (s *typedStore[T]) remove(e Entity)      { s.set.Remove(e.Index) }

// ComponentStore maps a component type to the dense sparse-set holding its
// rows (spec §4.4): "Map: component-type → BlobSparseSet". Stores are
// created lazily on first access (Insert, Get, Ptr or Bits), matching the teacher's lazy per-type
// store lookup (engine/component_store.go's GetStore pattern) generalized
// from a fixed struct of named fields to an arbitrary type registry, since
// this runtime is a library and cannot know a client's component types in
// advance.
type ComponentStore struct {
	stores map[reflect.Type]anyStore
}

// NewComponentStore returns an empty store.
func NewComponentStore() *ComponentStore {
	return &ComponentStore{stores: make(map[reflect.Type]anyStore)}
}

func storeFor[T any](cs *ComponentStore) *typedStore[T] {
	key := typeOf[T]()
	s, ok := cs.stores[key]
	if !ok {
		typed := newTypedStore[T]()
		cs.stores[key] = typed
		return typed
	}
	return s.(*typedStore[T])
}

// Insert writes value for entity e in the store for type T, creating the
// store on first use. An existing row is replaced.
func Insert[T any](cs *ComponentStore, e Entity, value T) {
	storeFor[T](cs).set.Insert(e.Index, value)
}

// Remove drops entity e's row from the store for type T. No-op if the
// store does not exist or the entity has no row there (spec §4.4).
func Remove[T any](cs *ComponentStore, e Entity) {
	key := typeOf[T]()
	if s, ok := cs.stores[key]; ok {
		s.remove(e)
	}
}

// RemoveByType drops entity e's row from whichever store is registered
// under componentType, if any. Used by World.Despawn to purge rows via the
// type-id set returned by Allocator.Dealloc, without static knowledge of
// each concrete component type.
func (cs *ComponentStore) RemoveByType(e Entity, componentType reflect.Type) {
	if s, ok := cs.stores[componentType]; ok {
		s.remove(e)
	}
}

// Get returns entity e's row for type T, and whether it has one.
func Get[T any](cs *ComponentStore, e Entity) (T, bool) {
	return storeFor[T](cs).set.Get(e.Index)
}

// Ptr returns a raw pointer to entity e's row for type T, or nil if absent.
// Valid only until the next structural mutation of that component's store.
func Ptr[T any](cs *ComponentStore, e Entity) *T {
	return storeFor[T](cs).set.Ptr(e.Index)
}

// Bits returns the membership bitset for component type T, creating an
// (empty) store for it if none exists yet. An empty bitset composes
// correctly with the rest of a query: required views over it yield no
// rows, optional views add nothing (spec §4.6 edge case).
func Bits[T any](cs *ComponentStore) *bitset.BitSet {
	return storeFor[T](cs).set.Bits()
}
