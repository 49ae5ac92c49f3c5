package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/pkg/iojson"
)

// notifyInput is the notification description read from flags or JSON.
type notifyInput struct {
	Category    string            `json:"category"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Text        string            `json:"text"`
	Image       string            `json:"image"`
	ImageMode   string            `json:"image_mode"`
	Attribution string            `json:"attribution"`
	Timestamp   string            `json:"timestamp"`
	Arguments   map[string]string `json:"arguments"`
	Resident    bool              `json:"resident"`
	Entrance    string            `json:"entrance"`
	URI         string            `json:"uri"`
}

type NotifyCmd struct {
	flags *Flags

	// flags
	in       notifyInput
	args     []string
	jsonIn   bool
	reader   iojson.FileReader[notifyInput]
	noCancel bool
}

// NewNotifyCmd creates a new notify command
func NewNotifyCmd(flags *Flags) *NotifyCmd {
	return &NotifyCmd{flags: flags}
}

// Register adds the notify command to the application
func (cmd *NotifyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notify",
		Usage:     "Post a notification",
		UsageText: "desknotify notify --category <category> --title <title> --body <body> [options]",
		Description: `Posts a notification under the identity of its category. Posting the same
category again replaces the earlier notification.

Use --text for a plain text notification that records the entrance and request
URI in its activation arguments. Use --json to read the notification as JSON
from --file or stdin.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "notification category (see 'desknotify categories')",
				Value:       string(notify.CategoryInfo),
				Destination: &cmd.in.Category,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "title; defaults to notifications.default_title",
				Destination: &cmd.in.Title,
			},
			&cli.StringFlag{
				Name:        "body",
				Aliases:     []string{"b"},
				Usage:       "body text",
				Destination: &cmd.in.Body,
			},
			&cli.StringFlag{
				Name:        "text",
				Usage:       "post a plain text notification with this text",
				Destination: &cmd.in.Text,
			},
			&cli.StringFlag{
				Name:        "image",
				Usage:       "http(s) URL of an image",
				Destination: &cmd.in.Image,
			},
			&cli.StringFlag{
				Name:        "image-mode",
				Usage:       "image placement (none, hero, inline)",
				Value:       string(notify.ImageHero),
				Destination: &cmd.in.ImageMode,
			},
			&cli.StringFlag{
				Name:        "attribution",
				Usage:       "attribution line",
				Destination: &cmd.in.Attribution,
			},
			&cli.StringFlag{
				Name:        "timestamp",
				Usage:       "displayed time in RFC3339",
				Destination: &cmd.in.Timestamp,
			},
			&cli.StringSliceFlag{
				Name:        "arg",
				Usage:       "activation argument as key=value (repeatable)",
				Destination: &cmd.args,
			},
			&cli.BoolFlag{
				Name:        "no-auto-cancel",
				Usage:       "keep a --text notification after it is activated",
				Destination: &cmd.noCancel,
			},
			&cli.StringFlag{
				Name:        "entrance",
				Usage:       "application area a --text notification leads to",
				Destination: &cmd.in.Entrance,
			},
			&cli.StringFlag{
				Name:        "uri",
				Usage:       "request URI recorded in a --text notification",
				Destination: &cmd.in.URI,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "read the notification as JSON from --file or stdin",
				Destination: &cmd.jsonIn,
			},
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NotifyCmd) run(ctx context.Context, c *cli.Command) error {
	in := cmd.in
	if cmd.jsonIn {
		var err error
		in, err = cmd.reader.Read()
		if err != nil {
			return err
		}
	} else {
		in.Resident = cmd.noCancel
		args, err := parseArgFlags(cmd.args)
		if err != nil {
			return err
		}
		in.Arguments = args
	}

	return postNotification(ctx, cmd.flags.Service, in, c.Root().Writer)
}

// postNotification posts in through svc and prints the identity it used.
func postNotification(ctx context.Context, svc *notify.Service, in notifyInput, w io.Writer) error {
	if !svc.AreNotificationsEnabled(ctx) {
		return cli.Exit("notifications are disabled on this desktop", 1)
	}

	category, err := parseCategoryOrInfo(in.Category)
	if err != nil {
		return err
	}

	if in.Text != "" {
		err = svc.NotifyText(ctx, in.Text, category, notify.TextOptions{
			AutoCancel: !in.Resident,
			Title:      in.Title,
			Entrance:   notify.Entrance(in.Entrance),
			RequestURI: in.URI,
		})
	} else {
		var spec notify.ContentSpec
		spec, err = contentSpec(in, category)
		if err != nil {
			return err
		}
		err = svc.Notify(ctx, spec)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, notify.Resolve(category).Key())
	return nil
}

func contentSpec(in notifyInput, category notify.Category) (notify.ContentSpec, error) {
	spec := notify.ContentSpec{
		Title:       in.Title,
		Body:        in.Body,
		Attribution: in.Attribution,
		Category:    category,
		Arguments:   in.Arguments,
		Resident:    in.Resident,
	}

	if in.Image != "" {
		if in.ImageMode == "" {
			in.ImageMode = string(notify.ImageHero)
		}
		mode, err := notify.ParseImageMode(in.ImageMode)
		if err != nil {
			return spec, err
		}
		spec.ImageURI = in.Image
		spec.ImageMode = mode
	}

	if in.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, in.Timestamp)
		if err != nil {
			return spec, fmt.Errorf("parse timestamp: %w", err)
		}
		spec.Timestamp = ts
	}

	return spec, nil
}

func parseCategoryOrInfo(name string) (notify.Category, error) {
	if name == "" {
		return notify.CategoryInfo, nil
	}
	return notify.ParseCategory(name)
}

// parseArgFlags converts key=value flag values into Arguments.
func parseArgFlags(values []string) (notify.Arguments, error) {
	if len(values) == 0 {
		return nil, nil
	}

	args := make(notify.Arguments, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --arg %q, expected key=value", v)
		}
		args[key] = value
	}
	return args, nil
}
