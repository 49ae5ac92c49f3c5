package commands

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

type ProgressCmd struct {
	flags *Flags

	// flags
	category string
	title    string
	status   string
	steps    int
	interval time.Duration
}

// NewProgressCmd creates a new progress command
func NewProgressCmd(flags *Flags) *ProgressCmd {
	return &ProgressCmd{flags: flags}
}

// Register adds the progress command to the application
func (cmd *ProgressCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "progress",
		Usage:     "Show a progress notification driven by a simulated transfer",
		UsageText: "desknotify progress [--steps N] [--interval D] [options]",
		Description: `Posts a progress notification and advances it in equal steps until it
reaches progress.max, at which point the notification is removed.

Dismissing the notification stops the run early.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "notification category",
				Value:       string(notify.CategoryDownloadProgress),
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "title; defaults to notifications.default_title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "status",
				Usage:       "status prefix shown before the percentage",
				Value:       "Downloading",
				Destination: &cmd.status,
			},
			&cli.IntFlag{
				Name:        "steps",
				Usage:       "number of updates before completion",
				Value:       20,
				Destination: &cmd.steps,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "delay between updates",
				Value:       200 * time.Millisecond,
				Destination: &cmd.interval,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ProgressCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	category, err := notify.ParseCategory(cmd.category)
	if err != nil {
		return err
	}

	state, err := runProgress(ctx, cmd.flags.Service, progressRun{
		Category: category,
		Title:    cmd.title,
		Status:   cmd.status,
		Steps:    cmd.steps,
		Interval: cmd.interval,
		Max:      cmd.flags.Config.Progress.Max,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, state)
	return nil
}

type progressRun struct {
	Category notify.Category
	Title    string
	Status   string
	Steps    int
	Interval time.Duration
	Max      float64
}

// runProgress posts a progress notification and feeds it Steps evenly spaced
// values up to Max. It returns the final state of the controller.
func runProgress(ctx context.Context, svc *notify.Service, run progressRun) (notify.ProgressState, error) {
	if run.Steps < 1 {
		return notify.StateActive, fmt.Errorf("steps must be at least 1")
	}

	var current atomic.Uint64
	statusText := func() string {
		pct := math.Float64frombits(current.Load()) / run.Max * 100
		return fmt.Sprintf("%s: %.0f%%", run.Status, pct)
	}

	ctrl, err := svc.NotifyWithProgress(ctx, statusText, run.Category, run.Title)
	if err != nil {
		return notify.StateActive, err
	}

	producerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	values := make(chan float64)
	go func() {
		defer close(values)
		ticker := time.NewTicker(run.Interval)
		defer ticker.Stop()

		for i := 1; i <= run.Steps; i++ {
			select {
			case <-producerCtx.Done():
				return
			case <-ticker.C:
			}

			v := run.Max * float64(i) / float64(run.Steps)
			current.Store(math.Float64bits(v))
			select {
			case values <- v:
			case <-producerCtx.Done():
				return
			}
		}
	}()

	err = ctrl.Drain(ctx, values)
	if err != nil && ctx.Err() == nil {
		return ctrl.State(), err
	}
	return ctrl.State(), nil
}
