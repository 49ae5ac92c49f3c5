package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

func TestPlatform_ShowUpdateRemove(t *testing.T) {
	ctx := context.Background()
	p := New()
	id := notify.Resolve(notify.CategoryDownloadProgress)

	result, err := p.Update(ctx, map[string]string{notify.KeyProgressValue: "0.10"}, id)
	require.NoError(t, err)
	assert.Equal(t, notify.UpdateNotFound, result)

	content := notify.NewContentBuilder().
		AddProgressBar("file", map[string]string{notify.KeyProgressValue: "0", notify.KeyProgressStatus: "Downloading"}).
		Content()
	require.NoError(t, p.Show(ctx, content, id))

	result, err = p.Update(ctx, map[string]string{notify.KeyProgressValue: "0.50"}, id)
	require.NoError(t, err)
	assert.Equal(t, notify.UpdateSucceeded, result)

	got, ok := p.Active(id)
	require.True(t, ok)
	assert.Equal(t, "0.50", got.Data[notify.KeyProgressValue])
	assert.Equal(t, "Downloading", got.Data[notify.KeyProgressStatus], "unchanged keys are kept")

	require.NoError(t, p.Remove(ctx, id))
	_, ok = p.Active(id)
	assert.False(t, ok)

	assert.Equal(t, []Op{OpUpdate, OpShow, OpUpdate, OpRemove}, p.Ops())
	assert.Equal(t, 2, p.Count(OpUpdate))
}

func TestPlatform_DismissMakesUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	p := New()
	id := notify.Resolve(notify.CategoryDownloadProgress)

	require.NoError(t, p.Show(ctx, notify.Content{}, id))
	p.Dismiss(id)

	result, err := p.Update(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, notify.UpdateNotFound, result)
	assert.Equal(t, 2, len(p.Calls()), "dismiss is not recorded")
}

func TestPlatform_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	p := &Platform{Errors: map[Op]error{OpShow: boom, OpEnabled: boom}}
	id := notify.Resolve(notify.CategoryInfo)

	err := p.Show(ctx, notify.Content{}, id)
	require.ErrorIs(t, err, boom)
	_, ok := p.Active(id)
	assert.False(t, ok)

	_, err = p.Enabled(ctx)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []Op{OpShow, OpEnabled}, p.Ops())
}

func TestPlatform_ClearAndUninstall(t *testing.T) {
	ctx := context.Background()
	p := &Platform{Packaged: true}

	require.NoError(t, p.Show(ctx, notify.Content{}, notify.Resolve(notify.CategoryInfo)))
	require.NoError(t, p.Show(ctx, notify.Content{}, notify.Resolve(notify.CategoryAnnouncement)))
	require.NoError(t, p.Clear(ctx))
	_, ok := p.Active(notify.Resolve(notify.CategoryInfo))
	assert.False(t, ok)

	require.NoError(t, p.Show(ctx, notify.Content{}, notify.Resolve(notify.CategoryInfo)))
	assert.True(t, p.IsPackaged())
	require.NoError(t, p.Uninstall(ctx))
	_, ok = p.Active(notify.Resolve(notify.CategoryInfo))
	assert.False(t, ok)
}

func TestPlatform_Enabled(t *testing.T) {
	ok, err := New().Enabled(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = (&Platform{Disabled: true}).Enabled(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlatform_Activations(t *testing.T) {
	p := New()

	var got []notify.Activation
	unsubscribe := p.OnActivated(func(a notify.Activation) { got = append(got, a) })
	assert.Equal(t, 1, p.Handlers())

	p.Activate(notify.Activation{Argument: "category=info"})
	unsubscribe()
	p.Activate(notify.Activation{Argument: "category=announcement"})

	assert.Equal(t, 0, p.Handlers())
	require.Len(t, got, 1)
	assert.Equal(t, "info", got[0].Arguments().Get(notify.ArgCategory))
}

func TestPlatform_Reset(t *testing.T) {
	ctx := context.Background()
	p := New()
	require.NoError(t, p.Show(ctx, notify.Content{}, notify.Resolve(notify.CategoryInfo)))

	p.Reset()
	assert.Empty(t, p.Calls())
	_, ok := p.Active(notify.Resolve(notify.CategoryInfo))
	assert.True(t, ok, "active slots survive a reset")
}
