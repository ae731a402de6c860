package propcell

// Bind wires src's behavior view into dst through fn: on each distinct value
// a of src, dst receives fn(a). The first emission is src's current value,
// written into dst before Bind returns, so the pair starts consistent
// without requiring a prior change.
//
// A mapping failure is wrapped in *MappingError and propagates out of the
// src write that triggered it (or out of Bind itself for the initial
// emission, in which case no binding is installed). A failed write into dst
// propagates the same way; nothing is swallowed and nothing is rolled back.
//
// The returned Binding holds non-owning references only: disposing it tears
// down the one subscription and leaves both endpoints alone.
func Bind[A, B any](src Readable[A], fn func(A) (B, error), dst Writable[B]) (*Binding, error) {
	sub, err := src.Behavior().Subscribe(Observer[A]{
		Value: func(a A) error {
			b, mapErr := fn(a)
			if mapErr != nil {
				return &MappingError{Err: mapErr}
			}
			return dst.Write(b)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Binding{sub: sub}, nil
}

// Binding is the live one-way link created by Bind.
type Binding struct {
	sub *Subscription
}

// Dispose cancels the binding's subscription to the source's behavior view.
// Idempotent; neither endpoint property is touched.
func (b *Binding) Dispose() {
	b.sub.Cancel()
}

// Identity returns the identity mapping for use with Bind and Sync.
func Identity[T any]() func(T) (T, error) {
	return func(v T) (T, error) { return v, nil }
}
