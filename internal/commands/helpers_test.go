package commands

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform/memory"
	"github.com/hay-kot/desknotify/pkg/urlutil"
)

func newTestService(t *testing.T) (*notify.Service, *memory.Platform) {
	t.Helper()

	mem := memory.New()
	svc := notify.NewService(mem, mem, mem, urlutil.Validator{}, notify.Options{
		DefaultTitle: "test",
		Progress:     notify.ProgressOptions{Max: 100},
	}, zerolog.Nop())
	return svc, mem
}
