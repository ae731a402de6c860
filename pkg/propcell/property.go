package propcell

import "sync"

// Property is a mutable value cell with change notifications.
//
// The current value and the subscriber list are the only shared state; both
// are mutex-guarded so individual operations are safe for concurrent use,
// and a new behavior subscriber sees the current value exactly as of its
// subscribe call. Notification delivery itself is synchronous and reentrant;
// see the package documentation for the delivery model.
type Property[T any] struct {
	mu       sync.Mutex
	value    T
	disposed bool

	stream *ChangeStream[T]

	// equal decides distinctness for the behavior view.
	// Nil means defaultEquals.
	equal func(T, T) bool
}

// New creates a property holding initial.
func New[T any](initial T, opts ...Option[T]) *Property[T] {
	p := &Property[T]{
		value:  initial,
		stream: NewChangeStream[T](),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Read returns the current value. It never fails; after Dispose it keeps
// returning the value frozen at disposal time.
func (p *Property[T]) Read() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Write sets the current value and pushes exactly one value notification,
// delivered to every current subscriber before Write returns. Writes that
// repeat the previous value still notify the raw view.
//
// Returns ErrDisposed on a disposed property, or the first error surfaced by
// a subscriber during delivery. On a delivery error the value is already
// set; there is no rollback.
func (p *Property[T]) Write(v T) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return ErrDisposed
	}
	p.value = v
	p.mu.Unlock()

	return p.stream.Push(v)
}

// Update applies fn to the current value and writes the result. The read and
// the value swap happen under the property's lock; delivery follows the same
// rules as Write.
func (p *Property[T]) Update(fn func(T) T) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return ErrDisposed
	}
	v := fn(p.value)
	p.value = v
	p.mu.Unlock()

	return p.stream.Push(v)
}

// Raw returns the view that emits once per write, duplicates included. Use
// it when an exact write count matters; bindings must use Behavior instead.
func (p *Property[T]) Raw() View[T] {
	return View[T]{subscribe: func(obs Observer[T]) (*Subscription, error) {
		return p.stream.Subscribe(obs), nil
	}}
}

// Behavior returns the view that delivers the current value to a new
// subscriber synchronously inside Subscribe, then only values distinct from
// the last value that same subscriber was delivered. Each subscriber tracks
// its own last-emitted value, so multiple behavior subscribers never
// interfere with one another.
func (p *Property[T]) Behavior() View[T] {
	return View[T]{subscribe: p.subscribeBehavior}
}

func (p *Property[T]) subscribeBehavior(obs Observer[T]) (*Subscription, error) {
	p.mu.Lock()
	if p.disposed {
		current := p.value
		p.mu.Unlock()
		// The stream is terminal, so no push can interleave: deliver the
		// frozen value, then let Subscribe hand over the sticky terminal
		// signal.
		if obs.Value != nil {
			if err := obs.Value(current); err != nil {
				return nil, err
			}
		}
		return p.stream.Subscribe(obs), nil
	}

	if obs.Value == nil {
		sub := p.stream.Subscribe(obs)
		p.mu.Unlock()
		return sub, nil
	}

	// The value capture and the subscription install happen under the
	// property lock as one step: a write cannot slip between them, so the
	// subscriber either sees the captured value as its initial emission or
	// receives the racing write through the installed subscription.
	state := &behaviorState[T]{}
	wrapped := Observer[T]{
		Complete: obs.Complete,
		Error:    obs.Error,
		Value: func(v T) error {
			if !state.emit(p.equals, v) {
				return nil
			}
			return obs.Value(v)
		},
	}
	current := p.value
	sub := p.stream.Subscribe(wrapped)
	p.mu.Unlock()

	// Initial emission: the captured value, unless a concurrent push beat
	// it through the subscription, in which case that newer value was the
	// subscriber's first delivery and the capture is stale.
	if state.prime(current) {
		if err := obs.Value(current); err != nil {
			sub.Cancel()
			return nil, err
		}
	}
	return sub, nil
}

// behaviorState tracks one behavior subscriber's last-emitted value. The
// initial emission and live pushes race to prime it; whichever gets there
// first becomes the subscriber's first delivery.
type behaviorState[T any] struct {
	mu     sync.Mutex
	primed bool
	last   T
}

// emit claims v for delivery. It reports false when v duplicates the
// previous emission.
func (s *behaviorState[T]) emit(equals func(T, T) bool, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primed && equals(s.last, v) {
		return false
	}
	s.primed = true
	s.last = v
	return true
}

// prime claims the initial emission; it reports false if a push already
// delivered something.
func (s *behaviorState[T]) prime(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primed {
		return false
	}
	s.primed = true
	s.last = v
	return true
}

// Dispose terminates the property: the first call marks it disposed, pushes
// exactly one completion signal to every current subscriber, then drops all
// subscriber references. Later calls are no-ops, later writes fail with
// ErrDisposed, and Read keeps returning the frozen value.
func (p *Property[T]) Dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	p.mu.Unlock()

	p.stream.Complete()
}

// fail terminates the property with an error signal instead of completion.
// Used by SourceProperty when its external source fails.
func (p *Property[T]) fail(err error) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	p.mu.Unlock()

	p.stream.Fail(err)
}

// Disposed reports whether Dispose has been called.
func (p *Property[T]) Disposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

func (p *Property[T]) equals(a, b T) bool {
	if p.equal != nil {
		return p.equal(a, b)
	}
	return defaultEquals(a, b)
}
