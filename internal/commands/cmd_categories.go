package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/core/styles"
	"github.com/hay-kot/desknotify/pkg/iojson"
)

type CategoriesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewCategoriesCmd creates a new categories command
func NewCategoriesCmd(flags *Flags) *CategoriesCmd {
	return &CategoriesCmd{flags: flags}
}

// Register adds the categories command to the application
func (cmd *CategoriesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "categories",
		Usage:       "List notification categories and their identities",
		UsageText:   "desknotify categories [--json]",
		Description: "Lists every category with the tag and group its notifications are posted under.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type categoryJSON struct {
	Category string          `json:"category"`
	Identity notify.Identity `json:"identity"`
}

func (cmd *CategoriesCmd) run(_ context.Context, c *cli.Command) error {
	if cmd.jsonOutput {
		out := make([]categoryJSON, 0, len(notify.Categories()))
		for _, category := range notify.Categories() {
			out = append(out, categoryJSON{Category: category.String(), Identity: notify.Resolve(category)})
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
	}

	return writeCategoriesTable(c.Root().Writer)
}

func writeCategoriesTable(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			return styles.TableCellStyle
		}).
		Headers("CATEGORY", "TAG", "GROUP")

	for _, category := range notify.Categories() {
		id := notify.Resolve(category)
		t.Row(category.String(), id.Tag, id.Group)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
