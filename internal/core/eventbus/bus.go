package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

type subscriber struct {
	id uint64
	fn func(any)
}

// EventBus dispatches events on a single goroutine started with Start.
// Publishing never blocks: when the buffer is full the event is dropped and
// the OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu     sync.RWMutex
	nextID uint64
	subs   map[Event][]subscriber
}

// New creates a bus with room for buffer pending events.
func New(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]subscriber),
	}
}

// Start dispatches events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) func() {
	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	bus.subs[event] = append(bus.subs[event], subscriber{id: id, fn: fn})
	bus.mu.Unlock()

	bus.runOnSubscribe(event)

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		subs := bus.subs[event]
		for i, s := range subs {
			if s.id == id {
				bus.subs[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]subscriber, len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			s.fn(env.payload)
		}()
	}
}
