package eventbus

import "sync"

// hooks holds the observer callbacks of an EventBus. Callbacks run on the
// goroutine that triggered them and must not block.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers fn to run after an event is queued for delivery.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	register(&bus.hooks, &bus.hooks.onPublish, fn)
}

// OnDrop registers fn to run when an event is discarded because the queue is full.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	register(&bus.hooks, &bus.hooks.onDrop, fn)
}

// OnSubscribe registers fn to run after a handler subscribes.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	register(&bus.hooks, &bus.hooks.onSubscribe, fn)
}

// OnPanic registers fn to run when a handler panics. Panics raised by fn
// itself are swallowed.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	register(&bus.hooks, &bus.hooks.onPanic, fn)
}

func register[F any](h *hooks, list *[]F, fn F) {
	h.mu.Lock()
	defer h.mu.Unlock()
	*list = append(*list, fn)
}

// snapshot copies the list chosen by pick under the read lock.
func snapshot[F any](h *hooks, pick func(*hooks) []F) []F {
	h.mu.RLock()
	defer h.mu.RUnlock()
	list := pick(h)
	out := make([]F, len(list))
	copy(out, list)
	return out
}

// send queues an event without blocking. A full queue drops the event.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range snapshot(&bus.hooks, func(h *hooks) []func(Event, any) { return h.onPublish }) {
			fn(event, payload)
		}
	default:
		for _, fn := range snapshot(&bus.hooks, func(h *hooks) []func(Event, any) { return h.onDrop }) {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range snapshot(&bus.hooks, func(h *hooks) []func(Event) { return h.onSubscribe }) {
		fn(event)
	}
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range snapshot(&bus.hooks, func(h *hooks) []func(Event, any, any) { return h.onPanic }) {
		func() {
			defer func() { _ = recover() }()
			fn(event, payload, recovered)
		}()
	}
}
