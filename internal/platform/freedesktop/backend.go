// Package freedesktop implements the notification platform on top of the
// freedesktop.org Desktop Notifications protocol, spoken either directly
// over D-Bus or through the notify-send and gdbus commands.
//
// The protocol addresses notifications by a server assigned id. Backend maps
// each notify.Identity onto the id of the notification currently occupying
// its slot and passes that id as replaces_id, so reposting an identity
// replaces the notification in place.
package freedesktop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hay-kot/desknotify/internal/core/eventbus"
	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/rs/zerolog"
)

// Server is the transport for the notification protocol.
type Server interface {
	// Notify shows msg, replacing notification replaces when non-zero, and
	// returns the id of the shown notification.
	Notify(ctx context.Context, replaces uint32, msg Message) (uint32, error)
	// CloseNotification closes notification id. Servers may return a
	// RemoteError when the id is unknown.
	CloseNotification(ctx context.Context, id uint32) error
	// Capabilities lists the optional features the server implements.
	Capabilities(ctx context.Context) ([]string, error)
}

// RemoteError is returned by a Server when the notification server itself
// rejects a call, as opposed to a transport failure.
type RemoteError struct {
	Name string
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Options configures a Backend.
type Options struct {
	// Timeout is the expiry requested for new notifications. Zero uses the
	// server default.
	Timeout time.Duration
	// Packaged reports the application runs from a managed package, which
	// makes Uninstall meaningful.
	Packaged bool
}

// Backend implements notify.Platform and notify.Installation over a Server.
type Backend struct {
	server Server
	slots  *SlotStore
	bus    *eventbus.EventBus
	opts   Options
	log    zerolog.Logger

	mu       sync.Mutex
	messages map[notify.Identity]Message
	closed   map[uint32]bool
}

var (
	_ notify.Platform     = (*Backend)(nil)
	_ notify.Installation = (*Backend)(nil)
)

// NewBackend creates a Backend. bus may be nil when no events are wanted.
func NewBackend(server Server, slots *SlotStore, bus *eventbus.EventBus, opts Options, log zerolog.Logger) *Backend {
	return &Backend{
		server:   server,
		slots:    slots,
		bus:      bus,
		opts:     opts,
		log:      log,
		messages: make(map[notify.Identity]Message),
		closed:   make(map[uint32]bool),
	}
}

// Enabled reports whether a notification server answers.
func (b *Backend) Enabled(ctx context.Context) (bool, error) {
	caps, err := b.server.Capabilities(ctx)
	if err != nil {
		return false, fmt.Errorf("query capabilities: %w", err)
	}
	b.log.Debug().Strs("capabilities", caps).Msg("notification server capabilities")
	return true, nil
}

// Show posts content into the slot for id.
func (b *Backend) Show(ctx context.Context, content notify.Content, id notify.Identity) error {
	msg := Render(content, id, b.opts.Timeout)

	b.mu.Lock()
	defer b.mu.Unlock()

	var replaces uint32
	if slot, ok := b.slots.Get(id); ok && !b.closed[slot.ID] {
		replaces = slot.ID
	}

	n, err := b.server.Notify(ctx, replaces, msg)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	b.messages[id] = msg
	delete(b.closed, n)

	b.log.Debug().Str("slot", id.Key()).Uint32("id", n).Uint32("replaces", replaces).Msg("notification shown")
	return b.slots.Put(Slot{Identity: id, ID: n, Arguments: content.Arguments.Encode()})
}

// Update re-sends the notification in slot id with new progress data. It
// reports NotFound when the slot is empty, its notification was closed, or
// this process never rendered it.
func (b *Backend) Update(ctx context.Context, data map[string]string, id notify.Identity) (notify.UpdateResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	slot, ok := b.slots.Get(id)
	if !ok || b.closed[slot.ID] {
		return notify.UpdateNotFound, nil
	}
	msg, ok := b.messages[id]
	if !ok {
		return notify.UpdateNotFound, nil
	}

	msg = msg.WithProgress(data)
	n, err := b.server.Notify(ctx, slot.ID, msg)
	if err != nil {
		return notify.UpdateNotFound, fmt.Errorf("notify: %w", err)
	}

	if n != slot.ID {
		// The server forgot the old notification and opened a new one.
		// Take it down again rather than resurrect a dismissed notification.
		b.log.Debug().Uint32("id", slot.ID).Uint32("new_id", n).Msg("notification vanished during update")
		if err := b.close(ctx, n); err != nil {
			return notify.UpdateNotFound, err
		}
		b.forget(id, slot.ID)
		return notify.UpdateNotFound, b.slots.Delete(id)
	}

	b.messages[id] = msg
	return notify.UpdateSucceeded, nil
}

// Remove closes the notification in slot id.
func (b *Backend) Remove(ctx context.Context, id notify.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	slot, ok := b.slots.Get(id)
	if !ok {
		return nil
	}
	if err := b.close(ctx, slot.ID); err != nil {
		return err
	}
	b.forget(id, slot.ID)
	return b.slots.Delete(id)
}

// Clear closes every notification this application has a slot for.
func (b *Backend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, slot := range b.slots.All() {
		if err := b.close(ctx, slot.ID); err != nil {
			return err
		}
		b.forget(slot.Identity, slot.ID)
		if err := b.slots.Delete(slot.Identity); err != nil {
			return err
		}
	}
	return nil
}

// IsPackaged reports Options.Packaged.
func (b *Backend) IsPackaged() bool {
	return b.opts.Packaged
}

// Uninstall closes all notifications and deletes the persisted slot store.
func (b *Backend) Uninstall(ctx context.Context) error {
	if err := b.Clear(ctx); err != nil {
		return err
	}
	return b.slots.Reset()
}

// HandleClosed records that the server closed notification n.
func (b *Backend) HandleClosed(n uint32, reason eventbus.CloseReason) {
	b.mu.Lock()
	b.closed[n] = true
	slot, ok := b.slots.ByID(n)
	b.mu.Unlock()

	if !ok {
		return
	}

	b.log.Debug().Str("slot", slot.Identity.Key()).Str("reason", reason.String()).Msg("notification closed")
	if b.bus != nil {
		b.bus.PublishNotificationClosed(eventbus.NotificationClosedPayload{Identity: slot.Identity, Reason: reason})
	}
}

// HandleAction turns an invoked action or inline reply on notification n
// into an activation event. Non-default actions are added to the arguments
// under the "action" key.
func (b *Backend) HandleAction(n uint32, action string, input map[string]string) {
	slot, ok := b.slots.ByID(n)
	if !ok {
		b.log.Debug().Uint32("id", n).Msg("action for unknown notification")
		return
	}

	argument := slot.Arguments
	if action != "" && action != DefaultAction {
		args := notify.ParseArguments(argument)
		args["action"] = action
		argument = args.Encode()
	}

	if b.bus != nil {
		b.bus.PublishNotificationActivated(eventbus.NotificationActivatedPayload{
			Identity:   slot.Identity,
			Activation: notify.Activation{Argument: argument, UserInput: input},
		})
	}
}

func (b *Backend) close(ctx context.Context, n uint32) error {
	err := b.server.CloseNotification(ctx, n)
	if err == nil {
		return nil
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		b.log.Debug().Err(err).Uint32("id", n).Msg("close ignored: notification already gone")
		return nil
	}
	return fmt.Errorf("close notification %d: %w", n, err)
}

func (b *Backend) forget(id notify.Identity, n uint32) {
	delete(b.messages, id)
	delete(b.closed, n)
}
