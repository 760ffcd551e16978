// Package property provides observable values for simkit widgets. A
// widget binds to a Property and reacts to changes regardless of whether
// they come from the keyboard, the simulation model, or another widget.
package property

import "sync"

// Listener is notified after a property's value changes.
type Listener[T comparable] func(old, new T)

// Property is an observable value. Setting a new value notifies every
// registered listener; setting an equal value notifies nobody.
type Property[T comparable] struct {
	mu        sync.Mutex
	value     T
	listeners map[int]Listener[T]
	nextID    int
}

// New creates a property holding initial.
func New[T comparable](initial T) *Property[T] {
	return &Property[T]{
		value:     initial,
		listeners: make(map[int]Listener[T]),
	}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set stores a new value and notifies listeners if it differs from the
// current one. Listeners run synchronously, outside the lock, in
// unspecified order.
func (p *Property[T]) Set(value T) {
	p.mu.Lock()
	old := p.value
	if old == value {
		p.mu.Unlock()
		return
	}
	p.value = value
	listeners := make([]Listener[T], 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(old, value)
	}
}

// Listen registers a change listener and returns a function that
// removes it.
func (p *Property[T]) Listen(fn Listener[T]) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Link registers a listener and immediately invokes it with the current
// value (old == new on the initial call), so bindings need no separate
// initialization path.
func (p *Property[T]) Link(fn Listener[T]) (unsubscribe func()) {
	unsubscribe = p.Listen(fn)
	v := p.Get()
	fn(v, v)
	return unsubscribe
}
