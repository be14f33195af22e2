// Package asset provides reference-counted handles to out-of-band asset
// data (textures, sounds, maps — whatever a client's Asset type names),
// freed once their last strong handle is released. Ported from the
// original's asset::handle/asset::daemon pair (spec §9 supplemented
// features): a Handle[T] carries either a Weak marker or a Strong
// channel endpoint that queues ref-count changes for a Daemon, which
// applies them when its Drain is called and frees an asset once its count
// reaches zero.
//
// Go has no Drop, so where the original decrements a strong handle's ref
// count automatically when it goes out of scope, this package requires an
// explicit Release call; a Handle not released leaks its increment until
// process exit, same as any other un-closed Go resource.
package asset

import (
	"reflect"

	"github.com/google/uuid"
)

// HandleID identifies one asset instance: the Go type it was registered
// under (so the daemon can call the free callback registered for that
// type) plus a random id distinguishing instances of that type.
// google/uuid replaces the original's TypeId+random-u64 pair with a
// single collision-resistant value per instance.
type HandleID struct {
	AssetType reflect.Type
	ID        uuid.UUID
}

// NewHandleID returns a fresh random id for asset type T.
func NewHandleID[T any]() HandleID {
	return HandleID{AssetType: reflect.TypeOf((*T)(nil)).Elem(), ID: uuid.New()}
}

type handleKind uint8

const (
	handleWeak handleKind = iota
	handleStrong
)

// Handle is a reference to an asset of type T, either Weak (does not keep
// the asset alive) or Strong (its Release call reports a decrement that
// may free the asset once the count reaches zero).
type Handle[T any] struct {
	id        HandleID
	kind      handleKind
	refChange chan<- RefChange
}

// NewWeakHandle returns a weak handle to id: it does not keep the asset
// alive and has nothing to release.
func NewWeakHandle[T any](id HandleID) Handle[T] {
	return Handle[T]{id: id, kind: handleWeak}
}

// newStrongHandle returns a strong handle, immediately reporting an
// increment on refChange. Used internally by NewStrongHandle /
// Handle.Clone; clients obtain strong handles through a Daemon.
func newStrongHandle[T any](id HandleID, refChange chan<- RefChange) Handle[T] {
	refChange <- RefChange{ID: id, Delta: 1}
	return Handle[T]{id: id, kind: handleStrong, refChange: refChange}
}

// ID returns the handle's identity.
func (h Handle[T]) ID() HandleID { return h.id }

// IsWeak reports whether this handle is weak, i.e. does not keep its asset
// alive.
func (h Handle[T]) IsWeak() bool { return h.kind == handleWeak }

// IsStrong is the complement of IsWeak.
func (h Handle[T]) IsStrong() bool { return h.kind == handleStrong }

// Clone returns a new handle to the same asset: another strong handle if
// h is strong (reporting its own increment), or an equivalent weak handle
// otherwise.
func (h Handle[T]) Clone() Handle[T] {
	if h.kind == handleStrong {
		return newStrongHandle[T](h.id, h.refChange)
	}
	return NewWeakHandle[T](h.id)
}

// CloseWeak returns a weak handle to the same asset, independent of h's
// own kind. Useful for handing out a non-owning reference without
// granting the recipient the ability to keep the asset alive.
func (h Handle[T]) CloseWeak() Handle[T] {
	return NewWeakHandle[T](h.id)
}

// Release reports this handle's decrement, if it is strong. No-op on a
// weak handle. A released strong handle must not be used again.
func (h Handle[T]) Release() {
	if h.kind == handleStrong {
		h.refChange <- RefChange{ID: h.id, Delta: -1}
	}
}

// RefChange is one increment or decrement queued for a Daemon, which
// applies it on its next Drain.
type RefChange struct {
	ID    HandleID
	Delta int
}
