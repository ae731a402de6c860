package propcell

// Option configures a property at construction time.
type Option[T any] func(*Property[T])

// WithEquals sets the equality function used by the property's behavior view
// to decide whether a written value is distinct from the previous one. Use it
// for types where reflect.DeepEqual is too expensive or has the wrong
// semantics. The default is defaultEquals.
func WithEquals[T any](fn func(T, T) bool) Option[T] {
	return func(p *Property[T]) {
		p.equal = fn
	}
}
