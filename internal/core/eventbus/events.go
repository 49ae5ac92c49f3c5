// Package eventbus provides a typed publish/subscribe event bus that carries
// notification events from platform backends to the rest of desknotify.
package eventbus

import "github.com/hay-kot/desknotify/internal/core/notify"

// Event names an event type.
type Event string

const (
	// Keep list sorted A-Z
	EventNotificationActivated Event = "notification.activated"
	EventNotificationClosed    Event = "notification.closed"
)

// CloseReason mirrors the reasons a notification server reports for closing
// a notification.
type CloseReason uint32

const (
	CloseReasonExpired   CloseReason = 1
	CloseReasonDismissed CloseReason = 2
	CloseReasonClosed    CloseReason = 3
	CloseReasonUndefined CloseReason = 4
)

func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	default:
		return "undefined"
	}
}

// NotificationActivatedPayload is emitted when the user activates a notification.
type NotificationActivatedPayload struct {
	Identity   notify.Identity
	Activation notify.Activation
}

// NotificationClosedPayload is emitted when a notification leaves the screen
// and the platform's history.
type NotificationClosedPayload struct {
	Identity notify.Identity
	Reason   CloseReason
}

// PublishNotificationActivated enqueues a notification.activated event.
func (bus *EventBus) PublishNotificationActivated(p NotificationActivatedPayload) {
	bus.send(EventNotificationActivated, p)
}

// SubscribeNotificationActivated registers fn for notification.activated events.
func (bus *EventBus) SubscribeNotificationActivated(fn func(NotificationActivatedPayload)) (unsubscribe func()) {
	return bus.subscribe(EventNotificationActivated, func(p any) {
		fn(p.(NotificationActivatedPayload))
	})
}

// PublishNotificationClosed enqueues a notification.closed event.
func (bus *EventBus) PublishNotificationClosed(p NotificationClosedPayload) {
	bus.send(EventNotificationClosed, p)
}

// SubscribeNotificationClosed registers fn for notification.closed events.
func (bus *EventBus) SubscribeNotificationClosed(fn func(NotificationClosedPayload)) (unsubscribe func()) {
	return bus.subscribe(EventNotificationClosed, func(p any) {
		fn(p.(NotificationClosedPayload))
	})
}

// OnActivated adapts the bus to notify.ActivationSource.
func (bus *EventBus) OnActivated(handler func(notify.Activation)) (unsubscribe func()) {
	return bus.SubscribeNotificationActivated(func(p NotificationActivatedPayload) {
		handler(p.Activation)
	})
}

var _ notify.ActivationSource = (*EventBus)(nil)
