package propcell

// View is a subscribe-only facade over a property's change stream. Raw and
// Behavior both hand out Views; the difference between them lives entirely
// in how the View routes the observer.
type View[T any] struct {
	subscribe func(Observer[T]) (*Subscription, error)
}

// Subscribe registers obs with the view. For a behavior view the current
// value is delivered to obs before Subscribe returns; an error from that
// initial delivery is returned here and the subscription is torn down. For
// a raw view the error is always nil.
func (v View[T]) Subscribe(obs Observer[T]) (*Subscription, error) {
	return v.subscribe(obs)
}
