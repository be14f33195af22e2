package ecs

// eventBufferState names which of an Events[T]'s two buffers newly-sent
// events land in.
type eventBufferState uint8

const (
	eventBufferA eventBufferState = iota
	eventBufferB
)

// Events is a double-buffered event queue (spec §9 supplemented features,
// ported from the original's Events<T>). Send appends to whichever buffer
// is currently active; Update swaps which buffer is active and clears the
// one that is becoming active (the one filled two Updates ago), so an event
// stays readable through the first Update after it was sent and is dropped
// by the second.
type Events[T any] struct {
	eventsA []T
	eventsB []T
	startA  int
	startB  int
	count   int
	state   eventBufferState
}

// NewEvents returns an empty event queue.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{}
}

// Send appends event to the active buffer.
func (ev *Events[T]) Send(event T) {
	switch ev.state {
	case eventBufferA:
		ev.eventsA = append(ev.eventsA, event)
	case eventBufferB:
		ev.eventsB = append(ev.eventsB, event)
	}
	ev.count++
}

// Update swaps the active buffer and clears the one that was active two
// Updates ago. The buffer being cleared on this call is the one that is
// about to start accepting new sends, so its own start offset (startA when
// swapping to A, startB when swapping to B) is set to the current count —
// symmetric in both directions, unlike the original, whose B-state arm
// wrote start_b in both cases and so never advanced startA.
func (ev *Events[T]) Update() {
	switch ev.state {
	case eventBufferA:
		ev.eventsB = ev.eventsB[:0]
		ev.state = eventBufferB
		ev.startB = ev.count
	case eventBufferB:
		ev.eventsA = ev.eventsA[:0]
		ev.state = eventBufferA
		ev.startA = ev.count
	}
}

// Drain removes and returns every currently buffered event, oldest first,
// and resets both start offsets to the current count.
func (ev *Events[T]) Drain() []T {
	ev.resetStart()
	var out []T
	switch ev.state {
	case eventBufferA:
		out = append(out, ev.eventsB...)
		out = append(out, ev.eventsA...)
	case eventBufferB:
		out = append(out, ev.eventsA...)
		out = append(out, ev.eventsB...)
	}
	ev.eventsA = ev.eventsA[:0]
	ev.eventsB = ev.eventsB[:0]
	return out
}

func (ev *Events[T]) resetStart() {
	ev.startA = ev.count
	ev.startB = ev.count
}

// Clear discards every buffered event without handing them back.
func (ev *Events[T]) Clear() {
	ev.resetStart()
	ev.eventsA = ev.eventsA[:0]
	ev.eventsB = ev.eventsB[:0]
}

// IsEmpty reports whether both buffers are empty.
func (ev *Events[T]) IsEmpty() bool {
	return len(ev.eventsA) == 0 && len(ev.eventsB) == 0
}

// Extend appends a batch of events to the active buffer.
func (ev *Events[T]) Extend(events []T) {
	count := ev.count
	for range events {
		count++
	}
	switch ev.state {
	case eventBufferA:
		ev.eventsA = append(ev.eventsA, events...)
	case eventBufferB:
		ev.eventsB = append(ev.eventsB, events...)
	}
	ev.count = count
}

// EventReader tracks one consumer's position in an Events[T] queue across
// ticks. A reader that calls Iter exactly once per Update sees every event
// exactly once (spec P8); a reader that misses an Update still receives
// older events whose buffer has not yet been cleared, never receives an
// event twice, and silently skips events cleared before it caught up.
type EventReader[T any] struct {
	count int
}

// NewEventReader returns a reader whose cursor starts at zero: its first
// Iter returns every event still buffered in the queue it is given.
func NewEventReader[T any]() *EventReader[T] {
	return &EventReader[T]{}
}

// Iter returns every event visible to this reader since its last Iter
// call, oldest first, and advances the reader's position.
func (r *EventReader[T]) Iter(ev *Events[T]) []T {
	aIndex := 0
	if r.count > ev.startA {
		aIndex = r.count - ev.startA
	}
	bIndex := 0
	if r.count > ev.startB {
		bIndex = r.count - ev.startB
	}
	r.count = ev.count

	var out []T
	switch ev.state {
	case eventBufferA:
		out = append(out, sliceFrom(ev.eventsB, bIndex)...)
		out = append(out, sliceFrom(ev.eventsA, aIndex)...)
	case eventBufferB:
		out = append(out, sliceFrom(ev.eventsA, aIndex)...)
		out = append(out, sliceFrom(ev.eventsB, bIndex)...)
	}
	return out
}

func sliceFrom[T any](s []T, from int) []T {
	if from >= len(s) {
		return nil
	}
	if from < 0 {
		from = 0
	}
	return s[from:]
}
