// Package notify issues, updates and cancels desktop notifications and
// tracks long running operations through progress-bound notifications.
//
// Every notification is addressed by the Identity resolved from its
// Category, so posting the same category twice replaces the earlier
// notification instead of stacking a duplicate.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/desknotify/internal/core/logging"
)

// DefaultTitle is used when a notification has no title.
const DefaultTitle = "desknotify"

// Entrance names the part of the application a notification leads back to.
type Entrance string

// Options configures a Service.
type Options struct {
	DefaultTitle string
	Progress     ProgressOptions
}

// TextOptions configures NotifyText.
type TextOptions struct {
	// AutoCancel dismisses the notification when it is activated.
	AutoCancel bool
	// Title defaults to Options.DefaultTitle.
	Title string
	// Entrance and RequestURI are carried in the activation arguments.
	Entrance   Entrance
	RequestURI string
}

// Service is the notification facade used by the rest of the application.
type Service struct {
	platform    Platform
	activations ActivationSource
	install     Installation
	adapter     *Adapter
	opts        Options
	log         zerolog.Logger
}

// NewService creates a Service. activations and install may be nil when the
// platform provides neither.
func NewService(
	platform Platform,
	activations ActivationSource,
	install Installation,
	validator URLValidator,
	opts Options,
	log zerolog.Logger,
) *Service {
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = DefaultTitle
	}
	opts.Progress = opts.Progress.withDefaults()

	return &Service{
		platform:    platform,
		activations: activations,
		install:     install,
		adapter:     NewAdapter(validator),
		opts:        opts,
		log:         log,
	}
}

// AreNotificationsEnabled reports whether notifications can be shown. A
// failing capability query counts as disabled.
func (s *Service) AreNotificationsEnabled(ctx context.Context) bool {
	ok, err := s.platform.Enabled(ctx)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("notification capability query failed")
		return false
	}
	return ok
}

// SupportsProgress reports whether progress notifications can be shown.
func (s *Service) SupportsProgress() bool {
	return true
}

// Cancel removes the notification for category.
func (s *Service) Cancel(ctx context.Context, category Category) error {
	ctx = logging.WithOperation(logging.WithCategory(ctx, category.String()), "cancel")
	id := Resolve(category)
	if err := s.platform.Remove(ctx, id); err != nil {
		return fmt.Errorf("cancel %s: %w", id, err)
	}
	s.log.Debug().Ctx(ctx).Str("tag", id.Tag).Str("group", id.Group).Msg("notification cancelled")
	return nil
}

// CancelAll removes every notification posted by the application.
func (s *Service) CancelAll(ctx context.Context) error {
	ctx = logging.WithOperation(ctx, "cancel_all")
	if err := s.platform.Clear(ctx); err != nil {
		return fmt.Errorf("cancel all: %w", err)
	}
	s.log.Debug().Ctx(ctx).Msg("all notifications cancelled")
	return nil
}

// Notify builds spec and posts it under its category's identity. An empty
// category posts as CategoryInfo and a blank title uses the default title.
func (s *Service) Notify(ctx context.Context, spec ContentSpec) error {
	category, err := s.category(spec.Category)
	if err != nil {
		return err
	}
	spec.Category = category

	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = s.opts.DefaultTitle
	}

	args := make(Arguments, len(spec.Arguments)+1)
	for k, v := range spec.Arguments {
		args[k] = v
	}
	args[ArgCategory] = category.String()
	spec.Arguments = args

	return s.show(logging.WithOperation(ctx, "notify"), s.adapter.Build(spec), category)
}

// NotifyText posts a plain title and text notification.
func (s *Service) NotifyText(ctx context.Context, text string, category Category, opts TextOptions) error {
	category, err := s.category(category)
	if err != nil {
		return err
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = s.opts.DefaultTitle
	}

	args := Arguments{ArgCategory: category.String()}
	if opts.Entrance != "" {
		args[ArgEntrance] = string(opts.Entrance)
	}
	if opts.RequestURI != "" {
		args[ArgURI] = opts.RequestURI
	}

	content := s.adapter.Build(ContentSpec{
		Title:     title,
		Body:      text,
		Category:  category,
		Arguments: args,
		Resident:  !opts.AutoCancel,
	})

	return s.show(logging.WithOperation(ctx, "notify_text"), content, category)
}

// NotifyWithProgress posts a progress notification for category and returns
// the controller that receives progress values. statusText is evaluated on
// every update, e.g. "Downloading: 42%". The caller must not run two
// progress notifications for the same category at once.
func (s *Service) NotifyWithProgress(ctx context.Context, statusText func() string, category Category, title string) (*ProgressController, error) {
	category, err := s.category(category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = s.opts.DefaultTitle
	}

	ctx = logging.WithOperation(logging.WithCategory(ctx, category.String()), "notify_progress")
	return StartProgress(ctx, s.platform, category, title, statusText, s.opts.Progress, s.log)
}

func (s *Service) category(c Category) (Category, error) {
	if c == "" {
		return CategoryInfo, nil
	}
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return c, nil
}

func (s *Service) show(ctx context.Context, content Content, category Category) error {
	ctx = logging.WithCategory(ctx, category.String())
	id := Resolve(category)
	if err := s.platform.Show(ctx, content, id); err != nil {
		return fmt.Errorf("show %s: %w", id, err)
	}
	s.log.Debug().Ctx(ctx).Str("tag", id.Tag).Str("group", id.Group).Msg("notification posted")
	return nil
}
