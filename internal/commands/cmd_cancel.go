package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

type CancelCmd struct {
	flags *Flags

	// flags
	all   bool
	match string
}

// NewCancelCmd creates a new cancel command
func NewCancelCmd(flags *Flags) *CancelCmd {
	return &CancelCmd{flags: flags}
}

// Register adds the cancel command to the application
func (cmd *CancelCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cancel",
		Usage:     "Remove posted notifications",
		UsageText: "desknotify cancel <category>... | --all | --match <glob>",
		Description: `Removes the notification of each named category. --match removes every
category whose name matches the glob, e.g. 'download-*'. --all removes every
notification posted by desknotify.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "remove all notifications",
				Destination: &cmd.all,
			},
			&cli.StringFlag{
				Name:        "match",
				Usage:       "remove categories matching a glob pattern",
				Destination: &cmd.match,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CancelCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.all {
		if c.Args().Len() > 0 || cmd.match != "" {
			return fmt.Errorf("--all cannot be combined with categories or --match")
		}
		return cmd.flags.Service.CancelAll(ctx)
	}

	categories, err := selectCategories(c.Args().Slice(), cmd.match)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories selected; pass category names, --match or --all")
	}

	return cancelCategories(ctx, cmd.flags.Service, categories, c.Root().Writer)
}

// selectCategories resolves category names and a glob pattern into a
// de-duplicated list in declaration order.
func selectCategories(names []string, pattern string) ([]notify.Category, error) {
	selected := make(map[notify.Category]bool)

	for _, name := range names {
		category, err := notify.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		selected[category] = true
	}

	if pattern != "" {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid --match pattern %q", pattern)
		}
		matched := false
		for _, category := range notify.Categories() {
			if ok, _ := doublestar.Match(pattern, category.String()); ok {
				selected[category] = true
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("--match %q matches no category", pattern)
		}
	}

	var out []notify.Category
	for _, category := range notify.Categories() {
		if selected[category] {
			out = append(out, category)
		}
	}
	return out, nil
}

func cancelCategories(ctx context.Context, svc *notify.Service, categories []notify.Category, w io.Writer) error {
	for _, category := range categories {
		if err := svc.Cancel(ctx, category); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, notify.Resolve(category).Key())
	}
	return nil
}
