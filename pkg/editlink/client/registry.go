package client

// Subscription is an opaque handle returned when a listener is registered.
// Cancelling it removes the listener in O(1) without disturbing the
// registration order of the others. Cancel is idempotent.
type Subscription struct {
	entry interface{ remove() bool }

	// onCancel is invoked once, on the Cancel call that actually removes
	// the listener. The owning Client uses it to keep its listener gauge
	// current.
	onCancel func()
}

// Cancel detaches the listener. The listener is guaranteed not to be called
// by any dispatch that starts after Cancel returns; cancelling during a
// dispatch takes effect for listeners not yet invoked in that pass.
func (s *Subscription) Cancel() {
	if s.entry != nil && s.entry.remove() {
		if s.onCancel != nil {
			s.onCancel()
		}
	}
}

// listenerEntry marks removal with a tombstone so cancelling never shifts
// the slice out from under an in-progress Invoke.
type listenerEntry[T any] struct {
	fn      func(*T)
	removed bool
}

// remove reports whether this call transitioned the entry to removed.
func (e *listenerEntry[T]) remove() bool {
	if e.removed {
		return false
	}
	e.removed = true
	return true
}

// listenerList is one event kind's ordered listener registry. Registration
// order is invocation order. The zero value is ready to use. Not safe for
// concurrent use; the owning Client documents its single-threaded contract.
type listenerList[T any] struct {
	entries []*listenerEntry[T]
}

func (l *listenerList[T]) subscribe(fn func(*T)) *Subscription {
	e := &listenerEntry[T]{fn: fn}
	l.entries = append(l.entries, e)
	return &Subscription{entry: e}
}

// invoke calls every live listener with the same event instance, in
// registration order. Listeners must not retain ev past the call.
func (l *listenerList[T]) invoke(ev *T) {
	for _, e := range l.entries {
		if !e.removed {
			e.fn(ev)
		}
	}
}

func (l *listenerList[T]) live() int {
	n := 0
	for _, e := range l.entries {
		if !e.removed {
			n++
		}
	}
	return n
}
