package propcell

// recorder is a test observer that records every signal it receives.
type recorder[T any] struct {
	values    []T
	completes int
	errs      []error
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Value: func(v T) error {
			r.values = append(r.values, v)
			return nil
		},
		Complete: func() {
			r.completes++
		},
		Error: func(err error) {
			r.errs = append(r.errs, err)
		},
	}
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
