package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/config"
	"github.com/hay-kot/desknotify/internal/core/doctor"
	"github.com/hay-kot/desknotify/internal/core/styles"
	"github.com/hay-kot/desknotify/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your notification setup",
		UsageText:   "desknotify doctor [options]",
		Description: "Runs diagnostic checks on configuration, the notification backend, and external tools.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., remove an unreadable slot store)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	f := cmd.flags

	// A corrupt store keeps the backend from opening, so check the
	// configured file in that case.
	slotsPath := ""
	switch {
	case f.Platform.Slots != nil:
		slotsPath = f.Platform.Slots.Path()
	case f.PlatformErr != nil:
		slotsPath = f.Config.SlotsFile()
	}

	return []doctor.Check{
		doctor.NewConfigCheck(f.Config, f.ConfigPath),
		doctor.NewPlatformCheck(f.Platform.Name, f.Platform.Notify, f.Platform.Install, f.PlatformErr),
		doctor.NewSlotsCheck(slotsPath, cmd.autofix),
		doctor.NewToolsCheck(f.Exec, f.Config.Platform == config.PlatformNotifySend),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.format == "json" {
		return cmd.outputJSON(c.Root().Writer, results)
	}

	return cmd.outputText(os.Stderr, results)
}

func (cmd *DoctorCmd) outputJSON(w io.Writer, results []doctor.Result) error {
	tally := doctor.Summarize(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Tally    `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: tally.Healthy(),
		Summary: tally,
		Checks:  results,
	}

	if err := iojson.WriteWith(w, os.Stderr, out); err != nil {
		return err
	}
	if !tally.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	divider := styles.TextMutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render("desknotify doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", styles.StatusIcon(string(item.Status)), item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	tally := doctor.Summarize(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", tally.Passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", tally.Warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", tally.Failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix && tally.Fixable > 0 {
		_, _ = fmt.Fprintln(w)
		hint := styles.TextMutedStyle.Render(fmt.Sprintf("Run 'desknotify doctor --autofix' to fix %d issue(s)", tally.Fixable))
		_, _ = fmt.Fprintln(w, hint)
	}

	if !tally.Healthy() {
		return cli.Exit("", 1)
	}

	return nil
}
