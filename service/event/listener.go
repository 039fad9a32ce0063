package event

import "log"

// Listener is invoked synchronously for every scheduling event. It is defined
// as a function type so callers can pass a plain function literal.
type Listener func(e *Event)

// StdoutListener logs a one-line description of every event.
func StdoutListener(e *Event) {
	if e == nil || e.Context == nil {
		return
	}
	log.Printf("[tick %d] %s", e.Context.Tick, e.String())
}

// Listeners fans an event out to every non-nil listener in order.
func Listeners(listeners ...Listener) Listener {
	var active []Listener
	for _, l := range listeners {
		if l != nil {
			active = append(active, l)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(e *Event) {
		for _, l := range active {
			l(e)
		}
	}
}
