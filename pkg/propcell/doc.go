// Package propcell provides observable property cells: mutable values that
// expose their mutations as a stream of change notifications, plus the
// combinators that link cells together.
//
// # Core Types
//
// Property[T] is a mutable value cell with change notifications:
//
//	count := propcell.New(0)
//	v := count.Read()       // Read the current value
//	err := count.Write(5)   // Write and notify subscribers
//	count.Dispose()         // Terminate; later writes fail with ErrDisposed
//
// Every property exposes two views of its changes. The raw view emits one
// notification per write, duplicates included. The behavior view delivers the
// current value to each new subscriber immediately, then only values distinct
// from the last value that subscriber saw:
//
//	count.Raw().Subscribe(propcell.Observer[int]{
//	    Value: func(v int) error { fmt.Println("wrote", v); return nil },
//	})
//	count.Behavior().Subscribe(propcell.Observer[int]{
//	    Value: func(v int) error { fmt.Println("now", v); return nil },
//	})
//
// # Combinators
//
// Bind keeps a target property tracking a source through a mapping function;
// Sync composes two opposing binds into a two-way link:
//
//	binding, err := propcell.Bind(celsius, toFahrenheit, fahrenheit)
//	link, err := propcell.Sync(celsius, toFahrenheit, fahrenheit, toCelsius)
//
// Both seed the target from the source's current value before returning, and
// both return handles whose Dispose tears down the link without touching the
// endpoint properties.
//
// Sync terminates because binds subscribe to behavior views: a write only
// crosses a bind when it changes the receiving side's distinctly-tracked
// value. This is guaranteed only for mapping pairs that round-trip
// (mapBA(mapAB(x)) == x); pairs that do not round-trip may oscillate until
// the propagation depth guard aborts the write with ErrPropagationDepth.
//
// # Delivery Model
//
// All delivery is synchronous and reentrant: a Write invokes every subscriber
// before it returns, and a subscriber's own writes nest on the same call
// stack. There is no queueing or batching. Individual operations are safe for
// concurrent use (the value and subscriber list are mutex-guarded and
// delivery runs on a snapshot), but ordering across concurrent writers is
// whatever the interleaving produces.
//
// # Adapters
//
// FromSource adapts an external push producer into a read-only property;
// ToSink adapts a push consumer into a write-only one. Both sides of a bind
// are typed against the minimal capability (Readable, Writable), so adapters
// compose with properties freely.
package propcell
