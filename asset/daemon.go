package asset

import (
	"reflect"
	"sync"
)

// freeFunc is the type-erased callback a Daemon invokes when an asset's
// ref count reaches zero; registered once per asset type via Register.
type freeFunc func(id HandleID)

// Daemon tracks ref-change reports from every strong Handle issued through
// it and frees an asset once its count drops to zero (ported from the
// original's AssetDaemon). Reports are queued on a buffered channel rather
// than applied synchronously, so Handle.Release does not wait for the
// daemon's bookkeeping while the buffer has room. The daemon runs no
// goroutine of its own: Drain applies every pending report and should be
// called once per tick, typically by a PreUpdate-stage system (spec §9).
type Daemon struct {
	refChange chan RefChange

	mu        sync.Mutex
	refCounts map[HandleID]int
	onFree    map[reflect.Type]freeFunc
}

// NewDaemon returns a daemon whose ref-change queue buffers 256 reports;
// once 256 reports are pending, issuing, cloning or releasing a strong
// handle blocks until Drain runs.
func NewDaemon() *Daemon {
	return &Daemon{
		refChange: make(chan RefChange, 256),
		refCounts: make(map[HandleID]int),
		onFree:    make(map[reflect.Type]freeFunc),
	}
}

// Register associates asset type T's free callback with the daemon and
// returns a channel for issuing strong handles against. Call once per
// asset type before any Strong handle of that type is created.
func Register[T any](d *Daemon, onFree func(id HandleID)) chan<- RefChange {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFree[reflect.TypeOf((*T)(nil)).Elem()] = onFree
	return d.refChange
}

// NewStrongHandle issues a strong handle to id, reporting its initial
// increment to the daemon. T must have been registered first.
func NewStrongHandle[T any](d *Daemon, id HandleID) Handle[T] {
	return newStrongHandle[T](id, d.refChange)
}

// Drain applies every ref-change report queued since the last Drain,
// freeing any asset whose count reaches zero via its registered callback.
// Non-blocking: returns as soon as the queue is empty.
func (d *Daemon) Drain() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		select {
		case change := <-d.refChange:
			d.refCounts[change.ID] += change.Delta
			if d.refCounts[change.ID] <= 0 {
				delete(d.refCounts, change.ID)
				if onFree, ok := d.onFree[change.ID.AssetType]; ok {
					onFree(change.ID)
				}
			}
		default:
			return
		}
	}
}

// RefCount returns id's currently tracked reference count (0 if unknown
// or already freed), for diagnostics and tests.
func (d *Daemon) RefCount(id HandleID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refCounts[id]
}
