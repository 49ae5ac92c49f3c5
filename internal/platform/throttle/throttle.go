// Package throttle rate limits calls into a notification platform so a
// chatty progress producer cannot flood the notification server.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

// Platform wraps a notify.Platform and waits on a token bucket before each
// call that reaches the notification server. Enabled is not limited.
type Platform struct {
	next    notify.Platform
	limiter *rate.Limiter
}

var _ notify.Platform = (*Platform)(nil)

// Wrap returns next limited to perSecond calls with the given burst. A
// non-positive perSecond disables limiting and returns next unchanged.
func Wrap(next notify.Platform, perSecond float64, burst int) notify.Platform {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &Platform{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Unwrap returns the wrapped platform.
func (p *Platform) Unwrap() notify.Platform {
	return p.next
}

func (p *Platform) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (p *Platform) Enabled(ctx context.Context) (bool, error) {
	return p.next.Enabled(ctx)
}

func (p *Platform) Show(ctx context.Context, content notify.Content, id notify.Identity) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	return p.next.Show(ctx, content, id)
}

func (p *Platform) Update(ctx context.Context, data map[string]string, id notify.Identity) (notify.UpdateResult, error) {
	if err := p.wait(ctx); err != nil {
		return notify.UpdateNotFound, err
	}
	return p.next.Update(ctx, data, id)
}

func (p *Platform) Remove(ctx context.Context, id notify.Identity) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	return p.next.Remove(ctx, id)
}

func (p *Platform) Clear(ctx context.Context) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	return p.next.Clear(ctx)
}
