// Package platform selects and assembles the notification backend named by
// the configuration.
package platform

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hay-kot/desknotify/internal/core/config"
	"github.com/hay-kot/desknotify/internal/core/eventbus"
	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform/freedesktop"
	"github.com/hay-kot/desknotify/internal/platform/memory"
	"github.com/hay-kot/desknotify/internal/platform/throttle"
	"github.com/hay-kot/desknotify/pkg/executil"
)

// Backend names reported by Platform.Name.
const (
	NameDBus       = "dbus"
	NameNotifySend = "notify-send"
	NameMemory     = "memory"
	// NameNone is the disabled fallback chosen by auto when no server is reachable.
	NameNone = "none"
)

// DialFunc connects a freedesktop backend over D-Bus.
type DialFunc func(appName string, slots *freedesktop.SlotStore, bus *eventbus.EventBus, opts freedesktop.Options, log zerolog.Logger) (*freedesktop.Backend, io.Closer, error)

// Deps are the process facilities Open uses. Zero values select the real ones.
type Deps struct {
	Bus        *eventbus.EventBus
	Exec       executil.Executor
	Dial       DialFunc
	Getenv     func(string) string
	FileExists func(string) bool
}

func (d Deps) withDefaults() Deps {
	if d.Exec == nil {
		d.Exec = &executil.RealExecutor{}
	}
	if d.Dial == nil {
		d.Dial = dialDBus
	}
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.FileExists == nil {
		d.FileExists = fileExists
	}
	return d
}

// Platform bundles what a backend provides to notify.NewService.
type Platform struct {
	Name        string
	Notify      notify.Platform
	Activations notify.ActivationSource
	Install     notify.Installation
	Slots       *freedesktop.SlotStore // nil for the memory backends

	closer io.Closer
}

// Close releases the backend connection, if any.
func (p *Platform) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// Open builds the backend selected by cfg.Platform. With "auto" it tries
// D-Bus, then notify-send, and finally settles on a disabled platform so
// capability checks report false instead of failing.
func Open(cfg *config.Config, deps Deps, log zerolog.Logger) (*Platform, error) {
	deps = deps.withDefaults()
	packaged := IsPackaged(cfg.Install.Mode, deps.Getenv, deps.FileExists)
	log.Debug().Bool("packaged", packaged).Str("platform", string(cfg.Platform)).Msg("opening notification platform")

	var (
		p   *Platform
		err error
	)

	switch cfg.Platform {
	case config.PlatformMemory:
		p = newMemory(NameMemory, &memory.Platform{Packaged: packaged})
	case config.PlatformDBus:
		p, err = openDBus(cfg, deps, packaged, log)
	case config.PlatformNotifySend:
		p, err = openNotifySend(cfg, deps, packaged, log)
	case config.PlatformAuto, "":
		p, err = openAuto(cfg, deps, packaged, log)
	default:
		return nil, fmt.Errorf("unknown platform %q", cfg.Platform)
	}
	if err != nil {
		return nil, err
	}

	p.Notify = throttle.Wrap(p.Notify, cfg.Rate.PerSecond, cfg.Rate.Burst)
	return p, nil
}

func openAuto(cfg *config.Config, deps Deps, packaged bool, log zerolog.Logger) (*Platform, error) {
	p, err := openDBus(cfg, deps, packaged, log)
	if err == nil {
		return p, nil
	}
	log.Debug().Err(err).Msg("dbus platform unavailable")

	if _, lookErr := deps.Exec.LookPath(freedesktop.NotifySendCmd); lookErr == nil {
		return openNotifySend(cfg, deps, packaged, log)
	}

	log.Warn().Err(err).Msg("no notification server found, notifications are disabled")
	return newMemory(NameNone, &memory.Platform{Disabled: true, Packaged: packaged}), nil
}

func openDBus(cfg *config.Config, deps Deps, packaged bool, log zerolog.Logger) (*Platform, error) {
	slots, err := freedesktop.OpenSlotStore(cfg.SlotsFile())
	if err != nil {
		return nil, err
	}

	backend, closer, err := deps.Dial(cfg.AppName, slots, deps.Bus, backendOptions(cfg, packaged), log)
	if err != nil {
		return nil, err
	}

	return &Platform{
		Name:        NameDBus,
		Notify:      backend,
		Activations: activations(deps.Bus),
		Install:     backend,
		Slots:       slots,
		closer:      closer,
	}, nil
}

func openNotifySend(cfg *config.Config, deps Deps, packaged bool, log zerolog.Logger) (*Platform, error) {
	if _, err := deps.Exec.LookPath(freedesktop.NotifySendCmd); err != nil {
		return nil, fmt.Errorf("notify-send platform: %w", err)
	}

	slots, err := freedesktop.OpenSlotStore(cfg.SlotsFile())
	if err != nil {
		return nil, err
	}

	server := freedesktop.NewExecServer(deps.Exec, cfg.AppName)
	backend := freedesktop.NewBackend(server, slots, deps.Bus, backendOptions(cfg, packaged), log)

	return &Platform{
		Name:        NameNotifySend,
		Notify:      backend,
		Activations: activations(deps.Bus),
		Install:     backend,
		Slots:       slots,
	}, nil
}

// Disabled returns a platform whose notifications are always disabled.
func Disabled() *Platform {
	return newMemory(NameNone, &memory.Platform{Disabled: true})
}

func newMemory(name string, m *memory.Platform) *Platform {
	return &Platform{
		Name:        name,
		Notify:      m,
		Activations: m,
		Install:     m,
	}
}

func backendOptions(cfg *config.Config, packaged bool) freedesktop.Options {
	return freedesktop.Options{
		Timeout:  cfg.Notifications.Timeout,
		Packaged: packaged,
	}
}

// activations returns bus as an ActivationSource, or nil when there is no
// bus so the service hands out inert subscriptions.
func activations(bus *eventbus.EventBus) notify.ActivationSource {
	if bus == nil {
		return nil
	}
	return bus
}

func dialDBus(appName string, slots *freedesktop.SlotStore, bus *eventbus.EventBus, opts freedesktop.Options, log zerolog.Logger) (*freedesktop.Backend, io.Closer, error) {
	backend, conn, err := freedesktop.Dial(appName, slots, bus, opts, log)
	if err != nil {
		return nil, nil, err
	}
	return backend, conn, nil
}

// IsPackaged resolves the install mode. In auto mode a Flatpak sandbox or a
// Snap confinement counts as packaged.
func IsPackaged(mode config.InstallMode, getenv func(string) string, exists func(string) bool) bool {
	switch mode {
	case config.InstallPackaged:
		return true
	case config.InstallPortable:
		return false
	}
	return getenv("FLATPAK_ID") != "" || getenv("SNAP") != "" || exists("/.flatpak-info")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
