package propcell

import "sync"

// MaxDepth bounds reentrant delivery on a single stream. A push that nests
// deeper than this aborts with ErrPropagationDepth instead of overflowing
// the call stack.
const MaxDepth = 64

// ChangeStream is a multicast push channel carrying value, completion, and
// error signals to an ordered set of observers.
//
// Delivery is synchronous: Push invokes every observer that was subscribed
// at the moment of the call, in subscription order, before it returns.
// Observers subscribed during a delivery pass do not see that pass.
// After Complete or Fail the stream is terminal: Push is rejected and a late
// Subscribe has the terminal signal delivered to it immediately.
type ChangeStream[T any] struct {
	mu    sync.Mutex
	subs  []streamSub[T]
	depth int
	done  bool
	err   error
}

// streamSub pairs an observer with its subscription ID for ordered removal.
type streamSub[T any] struct {
	id  uint64
	obs Observer[T]
}

// NewChangeStream returns an empty, live stream.
func NewChangeStream[T any]() *ChangeStream[T] {
	return &ChangeStream[T]{}
}

// Subscribe registers an observer. Subscription order is delivery order.
// If the stream is already terminal, the terminal signal is delivered to the
// observer before Subscribe returns and the returned handle is inert.
func (s *ChangeStream[T]) Subscribe(obs Observer[T]) *Subscription {
	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			if obs.Error != nil {
				obs.Error(err)
			}
		} else if obs.Complete != nil {
			obs.Complete()
		}
		return &Subscription{}
	}
	id := nextID()
	s.subs = append(s.subs, streamSub[T]{id: id, obs: obs})
	s.mu.Unlock()

	return &Subscription{cancel: func() { s.remove(id) }}
}

// remove drops the subscription with the given ID, preserving the order of
// the remaining observers.
func (s *ChangeStream[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Push delivers v to every current observer, in subscription order, before
// returning. Delivery runs on a snapshot of the subscriber list with the
// lock released, so observers may push, subscribe, or cancel reentrantly.
//
// If an observer's Value callback returns an error, delivery stops at that
// observer and the error is returned; observers earlier in the order keep
// whatever effects they already applied.
func (s *ChangeStream[T]) Push(v T) error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return ErrStreamTerminated
	}
	if s.depth >= MaxDepth {
		s.mu.Unlock()
		return ErrPropagationDepth
	}
	s.depth++
	snapshot := make([]streamSub[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	// The decrement must survive a panicking observer, or escaped panics
	// would ratchet depth up until every push fails.
	defer func() {
		s.mu.Lock()
		s.depth--
		s.mu.Unlock()
	}()

	for _, sub := range snapshot {
		if sub.obs.Value == nil {
			continue
		}
		if err := sub.obs.Value(v); err != nil {
			return err
		}
	}
	return nil
}

// Complete terminates the stream normally. Every current observer receives
// the completion signal once, then all observer references are dropped.
// Idempotent, and a no-op after Fail.
func (s *ChangeStream[T]) Complete() {
	s.terminate(nil)
}

// Fail terminates the stream with err. Every current observer receives the
// error signal once, then all observer references are dropped. Idempotent,
// and a no-op after Complete. A nil err is treated as Complete.
func (s *ChangeStream[T]) Fail(err error) {
	s.terminate(err)
}

func (s *ChangeStream[T]) terminate(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.err = err
	snapshot := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range snapshot {
		if err != nil {
			if sub.obs.Error != nil {
				sub.obs.Error(err)
			}
		} else if sub.obs.Complete != nil {
			sub.obs.Complete()
		}
	}
}

// Terminated reports whether the stream has delivered its terminal signal.
func (s *ChangeStream[T]) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
