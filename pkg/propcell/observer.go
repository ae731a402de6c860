package propcell

import "sync"

// Observer receives the three signal kinds a ChangeStream can deliver.
// Nil callbacks are skipped, so an observer that only cares about values
// sets only Value.
type Observer[T any] struct {
	// Value is invoked once per delivered value. Returning a non-nil error
	// aborts the delivery pass at this observer and propagates the error to
	// whichever Push or Write triggered it.
	Value func(T) error

	// Complete is invoked once when the stream terminates normally.
	Complete func()

	// Error is invoked once when the stream terminates with an error.
	Error func(error)
}

// Subscription is the teardown handle returned by Subscribe. Cancel removes
// the observer from the stream; it is idempotent and safe on a nil handle.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel removes the subscription's observer from its stream. No further
// signals are delivered after Cancel returns. Repeated calls are no-ops.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
