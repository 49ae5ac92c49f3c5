package doctor

import (
	"context"

	"github.com/hay-kot/desknotify/pkg/executil"
)

// ToolsCheck verifies that the commands used by the notify-send platform are
// available on $PATH.
type ToolsCheck struct {
	exec     executil.Executor
	required bool
}

// NewToolsCheck creates a new tools check. When required is set, as for the
// notify-send platform, missing tools fail the check instead of warning.
func NewToolsCheck(exec executil.Executor, required bool) *ToolsCheck {
	return &ToolsCheck{exec: exec, required: required}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	missing := StatusWarn
	if c.required {
		missing = StatusFail
	}

	for _, tool := range []struct {
		name string
		use  string
	}{
		{name: "notify-send", use: "posting notifications without a bus connection"},
		{name: "gdbus", use: "closing notifications without a bus connection"},
	} {
		if path, err := c.exec.LookPath(tool.name); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  tool.name,
				Status: missing,
				Detail: "not found on PATH (used for " + tool.use + ")",
			})
		} else {
			result.Items = append(result.Items, CheckItem{
				Label:  tool.name,
				Status: StatusPass,
				Detail: path,
			})
		}
	}

	return result
}
