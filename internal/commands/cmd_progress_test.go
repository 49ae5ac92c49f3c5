package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform/memory"
)

func TestRunProgress_Completes(t *testing.T) {
	svc, mem := newTestService(t)

	state, err := runProgress(context.Background(), svc, progressRun{
		Category: notify.CategoryDownloadProgress,
		Title:    "Update",
		Status:   "Downloading",
		Steps:    4,
		Interval: time.Millisecond,
		Max:      100,
	})
	require.NoError(t, err)

	assert.Equal(t, notify.StateCompleted, state)
	assert.Equal(t, []memory.Op{
		memory.OpShow,
		memory.OpUpdate,
		memory.OpUpdate,
		memory.OpUpdate,
		memory.OpRemove,
	}, mem.Ops())

	updates := mem.Calls()[1:4]
	assert.Equal(t, "0.25", updates[0].Data[notify.KeyProgressValue])
	assert.Equal(t, "Downloading", updates[0].Data[notify.KeyProgressStatus])
	assert.Equal(t, "25%", updates[0].Data[notify.KeyProgressValueString])
	assert.Equal(t, "0.75", updates[2].Data[notify.KeyProgressValue])
}

func TestRunProgress_Dismissed(t *testing.T) {
	svc, mem := newTestService(t)
	id := notify.Resolve(notify.CategoryDownloadProgress)

	go func() {
		for mem.Count(memory.OpShow) == 0 {
			time.Sleep(time.Millisecond)
		}
		mem.Dismiss(id)
	}()

	state, err := runProgress(context.Background(), svc, progressRun{
		Category: notify.CategoryDownloadProgress,
		Status:   "Downloading",
		Steps:    4,
		Interval: 100 * time.Millisecond,
		Max:      100,
	})
	require.NoError(t, err)

	assert.Equal(t, notify.StateDismissed, state)
	assert.Equal(t, []memory.Op{memory.OpShow, memory.OpUpdate}, mem.Ops())
}

func TestRunProgress_ContextCancelled(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := runProgress(ctx, svc, progressRun{
		Category: notify.CategoryDownloadProgress,
		Steps:    4,
		Interval: time.Hour,
		Max:      100,
	})
	require.NoError(t, err)
	assert.Equal(t, notify.StateActive, state)
}

func TestRunProgress_InvalidSteps(t *testing.T) {
	svc, mem := newTestService(t)

	_, err := runProgress(context.Background(), svc, progressRun{Category: notify.CategoryDownloadProgress, Max: 100})
	require.Error(t, err)
	assert.Empty(t, mem.Ops())
}
