package event

import "reflect"

// Bus is a synchronous typed event bus. Publish delivers to handlers
// immediately, in registration order, on the caller's goroutine. The
// damage lifecycle depends on that: requested → applied → taken must
// be observed in order within a single ApplyDamage call, so delivery
// cannot be deferred to a later tick.
//
// Accessed only from the simulation goroutine — no locks. Handlers
// must not call back into the damage pipeline (no re-entrancy).
type Bus struct {
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Publish delivers the event to every subscribed handler, in the
// order they subscribed, before returning.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, h := range b.handlers[t] {
		h.(func(T))(ev)
	}
}
