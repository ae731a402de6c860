package propcell

// SinkProperty adapts an external push consumer into a write-only property
// view, so anything that accepts pushed values can stand in as a Bind or
// Sync target. It holds no value and no stream; Write hands the value
// straight to the consumer.
type SinkProperty[T any] struct {
	fn func(T) error
}

// ToSink wraps fn as a write-only property. An error returned by fn
// propagates out of the Write (and through any bind chain) unchanged.
func ToSink[T any](fn func(T) error) *SinkProperty[T] {
	return &SinkProperty[T]{fn: fn}
}

// Write pushes v to the consumer.
func (s *SinkProperty[T]) Write(v T) error {
	return s.fn(v)
}
