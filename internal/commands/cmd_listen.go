package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/eventbus"
	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/core/styles"
)

type ListenCmd struct {
	flags *Flags
}

// NewListenCmd creates a new listen command
func NewListenCmd(flags *Flags) *ListenCmd {
	return &ListenCmd{flags: flags}
}

// Register adds the listen command to the application
func (cmd *ListenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "listen",
		Usage:     "Print notification activations until interrupted",
		UsageText: "desknotify listen",
		Description: `Registers the activation handler and prints every activation of a
desknotify notification, including its arguments and any inline reply. Closed
notifications are printed as well.

On exit from a packaged install (Flatpak or Snap) all notifications and the
tracked notification state are removed.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ListenCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_, _ = fmt.Fprintln(os.Stderr, styles.TextMutedStyle.Render("listening for notification activity, press Ctrl+C to stop"))
	return listen(ctx, cmd.flags.Service, cmd.flags.Bus, c.Root().Writer)
}

// listen prints activations and closes to w until ctx is done, then runs
// the shutdown hook.
func listen(ctx context.Context, svc *notify.Service, bus *eventbus.EventBus, w io.Writer) error {
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(w, format, args...)
	}

	sub := svc.OnStartup(func(a notify.Activation) {
		printf("%s %s\n", styles.TextSuccessStyle.Render("activated"), formatActivation(a))
	})

	if bus != nil {
		unsubscribe := bus.SubscribeNotificationClosed(func(p eventbus.NotificationClosedPayload) {
			printf("%s %s %s\n", styles.TextMutedStyle.Render("closed"), p.Identity.Key(), styles.TextMutedStyle.Render(p.Reason.String()))
		})
		defer unsubscribe()
	}

	<-ctx.Done()

	// The run context is done; give the shutdown hook its own.
	return svc.OnShutdown(context.WithoutCancel(ctx), sub)
}

func formatActivation(a notify.Activation) string {
	args := a.Arguments()
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+len(a.UserInput))
	for _, k := range keys {
		parts = append(parts, k+"="+args[k])
	}

	inputKeys := make([]string, 0, len(a.UserInput))
	for k := range a.UserInput {
		inputKeys = append(inputKeys, k)
	}
	sort.Strings(inputKeys)
	for _, k := range inputKeys {
		parts = append(parts, fmt.Sprintf("input.%s=%q", k, a.UserInput[k]))
	}

	return strings.Join(parts, " ")
}
