package propcell

import "errors"

// ErrDisposed is returned by Write (and any other mutating operation) on a
// property that has been disposed. Disposal fails loudly rather than
// dropping writes: a bound chain that silently swallowed writes would appear
// to work while losing updates. Callers that want fire-and-forget semantics
// can check for this error explicitly.
var ErrDisposed = errors.New("propcell: property disposed")

// ErrStreamTerminated is returned by Push on a stream that has already
// delivered its completion or error signal. The terminal state is sticky: no
// value is ever delivered after it.
var ErrStreamTerminated = errors.New("propcell: stream terminated")

// ErrPropagationDepth is returned when reentrant delivery on a single stream
// exceeds MaxDepth. It is the safety net for bind/sync chains whose mapping
// functions do not round-trip and would otherwise recurse until the stack
// overflows.
var ErrPropagationDepth = errors.New("propcell: propagation depth exceeded")

// MappingError wraps an error returned by a user-supplied mapping function
// during Bind or Sync propagation. It surfaces synchronously out of the
// write that triggered the mapping; nothing is retried and no partial chain
// state is rolled back.
type MappingError struct {
	Err error
}

func (e *MappingError) Error() string {
	return "propcell: mapping failed: " + e.Err.Error()
}

func (e *MappingError) Unwrap() error {
	return e.Err
}
