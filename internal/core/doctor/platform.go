package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

// PlatformCheck reports which backend is in use and whether it can show
// notifications.
type PlatformCheck struct {
	name     string
	platform notify.Platform
	install  notify.Installation
	openErr  error
}

// NewPlatformCheck creates a check for the backend named name. openErr is
// the error from opening the configured backend, if it failed and name
// refers to a fallback.
func NewPlatformCheck(name string, platform notify.Platform, install notify.Installation, openErr error) *PlatformCheck {
	return &PlatformCheck{name: name, platform: platform, install: install, openErr: openErr}
}

func (c *PlatformCheck) Name() string {
	return "Platform"
}

func (c *PlatformCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.openErr != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "backend",
			Status: StatusFail,
			Detail: c.openErr.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "backend",
		Status: StatusPass,
		Detail: c.name,
	})

	enabled, err := c.platform.Enabled(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "notifications",
			Status: StatusFail,
			Detail: fmt.Sprintf("capability query failed: %v", err),
		})
	case !enabled:
		result.Items = append(result.Items, CheckItem{
			Label:  "notifications",
			Status: StatusFail,
			Detail: "disabled",
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "notifications",
			Status: StatusPass,
			Detail: "enabled",
		})
	}

	mode := "portable"
	if c.install != nil && c.install.IsPackaged() {
		mode = "packaged (notification state is removed on exit)"
	}
	result.Items = append(result.Items, CheckItem{
		Label:  "install",
		Status: StatusPass,
		Detail: mode,
	})

	return result
}
