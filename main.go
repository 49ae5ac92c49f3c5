package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/commands"
	"github.com/hay-kot/desknotify/internal/core/config"
	"github.com/hay-kot/desknotify/internal/core/eventbus"
	"github.com/hay-kot/desknotify/internal/core/logging"
	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/core/styles"
	"github.com/hay-kot/desknotify/internal/platform"
	"github.com/hay-kot/desknotify/pkg/executil"
	"github.com/hay-kot/desknotify/pkg/logutils"
	"github.com/hay-kot/desknotify/pkg/urlutil"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		busCancel context.CancelFunc
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "desknotify",
		Usage:     "Post and manage desktop notifications",
		UsageText: "desknotify [global options] command [command options]",
		Description: `desknotify posts desktop notifications addressed by category. Each category
owns one notification slot, so posting it again replaces the notification in
place, and progress notifications can be updated until they complete or the
user dismisses them.

Run 'desknotify doctor' to check that a notification server is reachable.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DESKNOTIFY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (\"-\" logs to stderr)",
				Sources:     cli.EnvVars("DESKNOTIFY_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DESKNOTIFY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DESKNOTIFY_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme for terminal output",
				Sources:     cli.EnvVars("DESKNOTIFY_THEME"),
				Value:       styles.DefaultTheme,
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "-" {
				logFile = ""
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			styles.Configure(os.Stderr, flags.Theme)

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Start the event bus before any backend can publish to it
			bus := eventbus.New(64)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			go bus.Start(busCtx)
			flags.Bus = bus

			flags.Exec = &executil.RealExecutor{}

			p, err := platform.Open(cfg, platform.Deps{Bus: bus, Exec: flags.Exec}, logging.Component("platform"))
			if err != nil {
				// doctor reports the failure instead of aborting
				if c.Args().First() != "doctor" {
					return ctx, fmt.Errorf("open platform: %w", err)
				}
				flags.PlatformErr = err
				p = platform.Disabled()
			}
			flags.Platform = p

			flags.Service = notify.NewService(
				p.Notify,
				p.Activations,
				p.Install,
				urlutil.Validator{},
				notify.Options{
					DefaultTitle: cfg.Notifications.DefaultTitle,
					Progress: notify.ProgressOptions{
						Max:           cfg.Progress.Max,
						DefaultStatus: cfg.Progress.DefaultStatus,
					},
				},
				logging.Component("notify"),
			)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close the backend connection
			if flags.Platform != nil {
				if err := flags.Platform.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close notification platform")
				}
			}

			// Stop the event bus
			if busCancel != nil {
				busCancel()
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewNotifyCmd(flags).Register(app)
	app = commands.NewProgressCmd(flags).Register(app)
	app = commands.NewCancelCmd(flags).Register(app)
	app = commands.NewListenCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewCategoriesCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
