package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs bus activity to logger. Notification events carry
// their identity key; drops warn and handler panics log as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		withPayload(logger.Debug(), event, payload).Msg("event published")
	})

	bus.OnSubscribe(func(event Event) {
		logger.Debug().Str("event", string(event)).Msg("subscriber registered")
	})

	bus.OnDrop(func(event Event, payload any) {
		withPayload(logger.Warn(), event, payload).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, payload any, recovered any) {
		withPayload(logger.Error(), event, payload).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func withPayload(e *zerolog.Event, event Event, payload any) *zerolog.Event {
	e = e.Str("event", string(event))
	switch p := payload.(type) {
	case NotificationActivatedPayload:
		e = e.Str("identity", p.Identity.Key())
	case NotificationClosedPayload:
		e = e.Str("identity", p.Identity.Key()).Str("reason", p.Reason.String())
	}
	return e
}
