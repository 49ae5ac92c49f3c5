package notify

import (
	"context"
	"fmt"
	"sync"
)

// Subscription is the registration of an activation handler. It is owned by
// whatever manages the application's lifetime and released on shutdown.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe removes the handler. It is safe to call more than once and on
// a nil Subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// OnStartup registers handler for activations of any notification posted by
// this application. The handler runs on the activation source's goroutine;
// handlers doing UI work must hand off to their own execution context.
func (s *Service) OnStartup(handler func(Activation)) *Subscription {
	if s.activations == nil || handler == nil {
		return newSubscription(nil)
	}

	unsubscribe := s.activations.OnActivated(func(a Activation) {
		s.log.Debug().
			Str("argument", a.Argument).
			Int("inputs", len(a.UserInput)).
			Msg("notification activated")
		handler(a)
	})

	s.log.Debug().Msg("activation handler registered")
	return newSubscription(unsubscribe)
}

// OnShutdown releases sub and, when the application runs from a packaged
// install, uninstalls its notification state. Portable installs keep their
// notifications.
func (s *Service) OnShutdown(ctx context.Context, sub *Subscription) error {
	sub.Unsubscribe()

	if s.install == nil || !s.install.IsPackaged() {
		return nil
	}

	if err := s.install.Uninstall(ctx); err != nil {
		return fmt.Errorf("uninstall notifications: %w", err)
	}

	s.log.Info().Msg("packaged install: notification state uninstalled")
	return nil
}
