package propcell

// Sync links a and b bidirectionally: a→b through ab, b→a through ba. It is
// exactly two binds, constructed a→b first, so b is seeded from a's current
// value and the reverse bind then observes the just-written b. When the
// mappings round-trip (ba(ab(x)) == x) that second seed writes a's own value
// back and the behavior views go quiet: constructing a Sync never corrupts
// either side, and a later external write settles after at most one echo
// across the link (at most two mapping invocations total).
//
// Round-tripping is a caller precondition, not something Sync can enforce.
// A non-round-tripping pair can oscillate; the per-stream depth guard then
// aborts the triggering write with ErrPropagationDepth rather than letting
// the stack grow without bound.
func Sync[A, B any](a ReadWritable[A], ab func(A) (B, error), b ReadWritable[B], ba func(B) (A, error)) (*Syncer, error) {
	bindAB, err := Bind(a, ab, b)
	if err != nil {
		return nil, err
	}
	bindBA, err := Bind(b, ba, a)
	if err != nil {
		bindAB.Dispose()
		return nil, err
	}
	return &Syncer{ab: bindAB, ba: bindBA}, nil
}

// Syncer is the live two-way link created by Sync. It owns its two bindings
// as a unit; there is no partial teardown.
type Syncer struct {
	ab *Binding
	ba *Binding
}

// Dispose tears down both directions. Idempotent; the endpoint properties
// are left alone.
func (s *Syncer) Dispose() {
	s.ab.Dispose()
	s.ba.Dispose()
}
