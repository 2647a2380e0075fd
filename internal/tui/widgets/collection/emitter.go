package collection

// Emitter delivers values to subscribers synchronously, in subscription
// order.
type Emitter[T any] struct {
	next      int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns its unsubscribe func.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.next++
	id := e.next
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Fire delivers v to every current subscriber.
func (e *Emitter[T]) Fire(v T) {
	// copy so listeners may unsubscribe while being notified
	ls := append([]listener[T](nil), e.listeners...)
	for _, l := range ls {
		l.fn(v)
	}
}

// Clear drops all subscribers.
func (e *Emitter[T]) Clear() {
	e.listeners = nil
}
