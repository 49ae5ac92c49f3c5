package freedesktop

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/hay-kot/desknotify/internal/core/eventbus"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	iface      = "org.freedesktop.Notifications"

	signalClosed  = iface + ".NotificationClosed"
	signalAction  = iface + ".ActionInvoked"
	signalReplied = iface + ".NotificationReplied"
)

// caller is the part of dbus.BusObject the server uses.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusServer speaks the notification protocol over a D-Bus connection.
type DBusServer struct {
	obj     caller
	appName string
}

var _ Server = (*DBusServer)(nil)

// NewDBusServer returns a server calling obj on behalf of appName.
func NewDBusServer(obj caller, appName string) *DBusServer {
	return &DBusServer{obj: obj, appName: appName}
}

// Notify calls org.freedesktop.Notifications.Notify.
func (s *DBusServer) Notify(ctx context.Context, replaces uint32, msg Message) (uint32, error) {
	hints := make(map[string]dbus.Variant, len(msg.Hints))
	for k, v := range msg.Hints {
		hints[k] = dbus.MakeVariant(v)
	}

	actions := msg.Actions
	if actions == nil {
		actions = []string{}
	}

	var id uint32
	call := s.obj.CallWithContext(ctx, iface+".Notify", 0,
		s.appName, replaces, msg.Icon, msg.Summary, msg.Body, actions, hints, msg.Timeout)
	if err := storeCall(call, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// CloseNotification calls org.freedesktop.Notifications.CloseNotification.
func (s *DBusServer) CloseNotification(ctx context.Context, id uint32) error {
	return storeCall(s.obj.CallWithContext(ctx, iface+".CloseNotification", 0, id))
}

// Capabilities calls org.freedesktop.Notifications.GetCapabilities.
func (s *DBusServer) Capabilities(ctx context.Context) ([]string, error) {
	var caps []string
	if err := storeCall(s.obj.CallWithContext(ctx, iface+".GetCapabilities", 0), &caps); err != nil {
		return nil, err
	}
	return caps, nil
}

// storeCall converts error replies from the server into RemoteError and
// stores the reply body.
func storeCall(call *dbus.Call, retvalues ...interface{}) error {
	if call.Err != nil {
		return wrapDBusError(call.Err)
	}
	if len(retvalues) == 0 {
		return nil
	}
	if err := call.Store(retvalues...); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}

func wrapDBusError(err error) error {
	var val dbus.Error
	if errors.As(err, &val) {
		return &RemoteError{Name: val.Name, Err: err}
	}
	var ptr *dbus.Error
	if errors.As(err, &ptr) {
		return &RemoteError{Name: ptr.Name, Err: err}
	}
	return err
}

// Conn owns a private session bus connection and the signal listener
// feeding a Backend.
type Conn struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	done    chan struct{}
	log     zerolog.Logger
}

// Dial connects to the session bus and returns a Backend bound to the
// notification server together with the connection that must be closed
// when the application exits.
func Dial(appName string, slots *SlotStore, bus *eventbus.EventBus, opts Options, log zerolog.Logger) (*Backend, *Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, nil, fmt.Errorf("connect session bus: %w", err)
	}

	server := NewDBusServer(conn.Object(busName, objectPath), appName)
	backend := NewBackend(server, slots, bus, opts, log)

	c := &Conn{
		conn:    conn,
		signals: make(chan *dbus.Signal, 32),
		done:    make(chan struct{}),
		log:     log,
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface(iface),
	); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("subscribe notification signals: %w", err)
	}
	conn.Signal(c.signals)

	go c.listen(backend)

	return backend, c, nil
}

func (c *Conn) listen(b *Backend) {
	for {
		select {
		case <-c.done:
			return
		case sig, ok := <-c.signals:
			if !ok {
				return
			}
			if err := DispatchSignal(b, sig); err != nil {
				c.log.Debug().Err(err).Str("signal", sig.Name).Msg("ignored notification signal")
			}
		}
	}
}

// Close stops the listener and closes the bus connection.
func (c *Conn) Close() error {
	c.conn.RemoveSignal(c.signals)
	close(c.done)
	return c.conn.Close()
}

// DispatchSignal routes a notification server signal to b.
func DispatchSignal(b *Backend, sig *dbus.Signal) error {
	switch sig.Name {
	case signalClosed:
		var id, reason uint32
		if err := dbus.Store(sig.Body, &id, &reason); err != nil {
			return err
		}
		b.HandleClosed(id, eventbus.CloseReason(reason))
	case signalAction:
		var id uint32
		var action string
		if err := dbus.Store(sig.Body, &id, &action); err != nil {
			return err
		}
		b.HandleAction(id, action, nil)
	case signalReplied:
		var id uint32
		var text string
		if err := dbus.Store(sig.Body, &id, &text); err != nil {
			return err
		}
		b.HandleAction(id, DefaultAction, map[string]string{"reply": text})
	default:
		return fmt.Errorf("unhandled signal %s", sig.Name)
	}
	return nil
}
