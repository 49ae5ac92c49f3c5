package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/pkg/executil"
)

func TestToolsCheck_BothPresent(t *testing.T) {
	check := NewToolsCheck(&executil.RecordingExecutor{}, false)
	result := check.Run(context.Background())

	assert.Equal(t, "Tools", result.Name)
	require.Len(t, result.Items, 2)

	assert.Equal(t, "notify-send", result.Items[0].Label)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "/usr/bin/notify-send", result.Items[0].Detail)

	assert.Equal(t, "gdbus", result.Items[1].Label)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

func TestToolsCheck_MissingOptional(t *testing.T) {
	exec := &executil.RecordingExecutor{Missing: map[string]bool{"gdbus": true}}

	result := NewToolsCheck(exec, false).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Detail, "not found on PATH")
}

func TestToolsCheck_MissingRequired(t *testing.T) {
	exec := &executil.RecordingExecutor{Missing: map[string]bool{"notify-send": true}}

	result := NewToolsCheck(exec, true).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}
