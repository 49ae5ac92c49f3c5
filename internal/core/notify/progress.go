package notify

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultProgressMax is the value at which a progress notification is
// considered complete when no maximum is configured.
const DefaultProgressMax = 100.0

// ProgressState is the lifecycle state of a ProgressController.
type ProgressState int

const (
	// StateActive accepts values and forwards them to the platform.
	StateActive ProgressState = iota
	// StateCompleted is reached once the maximum value was pushed and the
	// notification removed.
	StateCompleted
	// StateDismissed is reached when the platform reports the notification
	// is gone. Later values are dropped.
	StateDismissed
)

func (s ProgressState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further platform calls will be made.
func (s ProgressState) Terminal() bool {
	return s != StateActive
}

// Sink accepts progress values for a single notification.
type Sink interface {
	Push(ctx context.Context, v float64) error
	State() ProgressState
}

// ProgressOptions configures a ProgressController.
type ProgressOptions struct {
	// Max is the value that marks completion. Values are normalized against
	// it before they are shown. Defaults to DefaultProgressMax.
	Max float64
	// DefaultStatus replaces a missing status label. Defaults to DefaultProgressStatus.
	DefaultStatus string
}

func (o ProgressOptions) withDefaults() ProgressOptions {
	if o.Max <= 0 || math.IsNaN(o.Max) || math.IsInf(o.Max, 0) {
		o.Max = DefaultProgressMax
	}
	if o.DefaultStatus == "" {
		o.DefaultStatus = DefaultProgressStatus
	}
	return o
}

// ProgressController drives one progress-bound notification from its initial
// post to completion or dismissal. At most one controller should drive a
// given category at a time.
type ProgressController struct {
	platform   Platform
	id         Identity
	statusText func() string
	opts       ProgressOptions
	log        zerolog.Logger

	mu      sync.Mutex
	state   ProgressState
	updated bool
}

var _ Sink = (*ProgressController)(nil)

// StartProgress posts a progress notification for category at 0% and returns
// the controller that owns its updates. statusText is called on every update
// and decoded with DecodeProgressText.
func StartProgress(
	ctx context.Context,
	platform Platform,
	category Category,
	title string,
	statusText func() string,
	opts ProgressOptions,
	log zerolog.Logger,
) (*ProgressController, error) {
	if statusText == nil {
		statusText = func() string { return "" }
	}

	id := Resolve(category)
	c := &ProgressController{
		platform:   platform,
		id:         id,
		statusText: statusText,
		opts:       opts.withDefaults(),
		log:        log.With().Str("tag", id.Tag).Str("group", id.Group).Logger(),
	}

	data := c.data(0)
	data[KeyProgressValue] = "0"

	content := NewContentBuilder().
		AddText(title, TextStyleHeader).
		AddProgressBar(title, data).
		SetArguments(Arguments{ArgCategory: category.String()}).
		Content()

	if err := platform.Show(ctx, content, c.id); err != nil {
		return nil, fmt.Errorf("show progress notification: %w", err)
	}

	c.log.Debug().Ctx(ctx).Msg("progress notification posted")
	return c, nil
}

// Identity returns the slot the controller drives.
func (c *ProgressController) Identity() Identity {
	return c.id
}

// State returns the current lifecycle state.
func (c *ProgressController) State() ProgressState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Push applies a progress value. Values at or above the maximum remove the
// notification; other values update it. Once the controller is terminal,
// Push is a no-op. Platform faults are returned and leave the state unchanged.
func (c *ProgressController) Push(ctx context.Context, v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Terminal() || math.IsNaN(v) {
		return nil
	}

	if v >= c.opts.Max {
		if err := c.platform.Remove(ctx, c.id); err != nil {
			return fmt.Errorf("remove completed notification: %w", err)
		}
		c.state = StateCompleted
		c.log.Debug().Ctx(ctx).Msg("progress completed")
		return nil
	}

	// The initial post already shows zero.
	if v <= 0 && !c.updated {
		return nil
	}

	data := c.data(v)
	res, err := c.platform.Update(ctx, data, c.id)
	if err != nil {
		return fmt.Errorf("update progress notification: %w", err)
	}
	c.updated = true

	if res == UpdateNotFound {
		c.state = StateDismissed
		c.log.Info().Ctx(ctx).Msg("progress notification dismissed, dropping further updates")
		return nil
	}

	c.log.Debug().Ctx(ctx).Str("value", data[KeyProgressValue]).Msg("progress updated")
	return nil
}

// Drain pushes values from ch in order until ch is closed, the controller
// becomes terminal, or ctx is done.
func (c *ProgressController) Drain(ctx context.Context, ch <-chan float64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			if err := c.Push(ctx, v); err != nil {
				return err
			}
			if c.State().Terminal() {
				return nil
			}
		}
	}
}

func (c *ProgressController) data(v float64) map[string]string {
	fraction := math.Max(0, v/c.opts.Max)
	status, label := decodeProgressText(c.statusText(), c.opts.DefaultStatus)
	return map[string]string{
		KeyProgressValue:       strconv.FormatFloat(fraction, 'f', 2, 64),
		KeyProgressValueString: label,
		KeyProgressStatus:      status,
	}
}
