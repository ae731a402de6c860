package propcell

import "sync"

// Source is an external push producer: anything that can deliver value,
// completion, and error signals to an observer. *ChangeStream implements it,
// as does wsource.Feed.
type Source[T any] interface {
	Subscribe(Observer[T]) *Subscription
}

// SourceProperty adapts a Source into a read-only property. The property's
// value tracks the source's pushes; the write side is not exposed.
//
// If the source terminates before Dispose is called, the inner property is
// terminated in response exactly once: completion on a completed source, an
// error signal on a failed one. Read keeps working either way.
type SourceProperty[T any] struct {
	inner *Property[T]
	sub   *Subscription
	once  sync.Once
}

// FromSource creates a read-only property seeded with initial and driven by
// src. The subscription to src is live before FromSource returns.
func FromSource[T any](src Source[T], initial T, opts ...Option[T]) *SourceProperty[T] {
	sp := &SourceProperty[T]{inner: New(initial, opts...)}
	sp.sub = src.Subscribe(Observer[T]{
		Value: func(v T) error {
			return sp.inner.Write(v)
		},
		Complete: func() {
			sp.terminate(nil)
		},
		Error: func(err error) {
			sp.terminate(err)
		},
	})
	return sp
}

// Read returns the current value.
func (sp *SourceProperty[T]) Read() T {
	return sp.inner.Read()
}

// Raw returns the once-per-push view, duplicates included.
func (sp *SourceProperty[T]) Raw() View[T] {
	return sp.inner.Raw()
}

// Behavior returns the current-first, distinct-values view.
func (sp *SourceProperty[T]) Behavior() View[T] {
	return sp.inner.Behavior()
}

// Dispose unsubscribes from the source and disposes the inner property.
// Idempotent, also against a source that already terminated on its own.
func (sp *SourceProperty[T]) Dispose() {
	sp.terminate(nil)
}

func (sp *SourceProperty[T]) terminate(err error) {
	sp.once.Do(func() {
		sp.sub.Cancel()
		if err != nil {
			sp.inner.fail(err)
		} else {
			sp.inner.Dispose()
		}
	})
}
