package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform/memory"
)

func TestSelectCategories(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		pattern string
		want    []notify.Category
		wantErr bool
	}{
		{
			name:  "names in declaration order",
			names: []string{"info", "update-available"},
			want:  []notify.Category{notify.CategoryUpdateAvailable, notify.CategoryInfo},
		},
		{
			name:    "glob",
			pattern: "download-*",
			want:    []notify.Category{notify.CategoryDownloadProgress, notify.CategoryDownloadComplete},
		},
		{
			name:    "names and glob deduplicated",
			names:   []string{"download-complete"},
			pattern: "download-*",
			want:    []notify.Category{notify.CategoryDownloadProgress, notify.CategoryDownloadComplete},
		},
		{
			name:    "unknown name",
			names:   []string{"bogus"},
			wantErr: true,
		},
		{
			name:    "invalid pattern",
			pattern: "[",
			wantErr: true,
		},
		{
			name:    "pattern matches nothing",
			pattern: "nothing-*",
			wantErr: true,
		},
		{
			name: "nothing selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectCategories(tt.names, tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCancelCategories(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, notify.ContentSpec{Title: "a", Category: notify.CategoryDownloadComplete}))
	require.NoError(t, svc.Notify(ctx, notify.ContentSpec{Title: "b", Category: notify.CategoryInfo}))

	var out bytes.Buffer
	err := cancelCategories(ctx, svc, []notify.Category{notify.CategoryDownloadComplete}, &out)
	require.NoError(t, err)

	assert.Equal(t, "downloads/download-complete\n", out.String())
	_, ok := mem.Active(notify.Resolve(notify.CategoryDownloadComplete))
	assert.False(t, ok)
	_, ok = mem.Active(notify.Resolve(notify.CategoryInfo))
	assert.True(t, ok)
}

func TestCancelCategories_StopsOnError(t *testing.T) {
	svc, mem := newTestService(t)
	mem.Errors = map[memory.Op]error{memory.OpRemove: assert.AnError}

	var out bytes.Buffer
	err := cancelCategories(context.Background(), svc, []notify.Category{notify.CategoryInfo, notify.CategoryNewMessage}, &out)
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, out.String())
	assert.Equal(t, 1, mem.Count(memory.OpRemove))
}
