package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform/memory"
)

func TestPostNotification(t *testing.T) {
	svc, mem := newTestService(t)
	var out bytes.Buffer

	err := postNotification(context.Background(), svc, notifyInput{
		Category: "new-message",
		Title:    "Inbox",
		Body:     "2 unread",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "messages/new-message\n", out.String())

	content, ok := mem.Active(notify.Resolve(notify.CategoryNewMessage))
	require.True(t, ok)
	assert.Equal(t, "Inbox", content.Title())
	assert.Equal(t, "2 unread", content.Body())
}

func TestPostNotification_Text(t *testing.T) {
	svc, mem := newTestService(t)
	var out bytes.Buffer

	err := postNotification(context.Background(), svc, notifyInput{
		Text:     "hello",
		Entrance: "settings",
		URI:      "app://settings",
		Resident: true,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "general/info\n", out.String())

	content, ok := mem.Active(notify.Resolve(notify.CategoryInfo))
	require.True(t, ok)
	assert.Equal(t, "test", content.Title())
	assert.True(t, content.Resident)
	assert.Equal(t, "settings", content.Arguments.Get(notify.ArgEntrance))
	assert.Equal(t, "app://settings", content.Arguments.Get(notify.ArgURI))
}

func TestPostNotification_Disabled(t *testing.T) {
	svc, mem := newTestService(t)
	mem.Disabled = true
	var out bytes.Buffer

	err := postNotification(context.Background(), svc, notifyInput{Title: "x"}, &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, mem.Count(memory.OpShow))
}

func TestPostNotification_UnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	err := postNotification(context.Background(), svc, notifyInput{Category: "bogus"}, &bytes.Buffer{})
	require.ErrorIs(t, err, notify.ErrUnknownCategory)
}

func TestContentSpec(t *testing.T) {
	spec, err := contentSpec(notifyInput{
		Title:     "t",
		Body:      "b",
		Image:     "https://example.com/a.png",
		Timestamp: "2024-05-01T10:00:00Z",
	}, notify.CategoryAnnouncement)
	require.NoError(t, err)

	assert.Equal(t, notify.ImageHero, spec.ImageMode)
	assert.Equal(t, "https://example.com/a.png", spec.ImageURI)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), spec.Timestamp.UTC())
	assert.Equal(t, notify.CategoryAnnouncement, spec.Category)
}

func TestContentSpec_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   notifyInput
	}{
		{name: "image mode", in: notifyInput{Image: "https://example.com/a.png", ImageMode: "banner"}},
		{name: "timestamp", in: notifyInput{Timestamp: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contentSpec(tt.in, notify.CategoryInfo)
			assert.Error(t, err)
		})
	}
}

func TestContentSpec_NoImageIgnoresMode(t *testing.T) {
	spec, err := contentSpec(notifyInput{ImageMode: "banner"}, notify.CategoryInfo)
	require.NoError(t, err)
	assert.Empty(t, spec.ImageURI)
	assert.Empty(t, spec.ImageMode)
}

func TestParseArgFlags(t *testing.T) {
	args, err := parseArgFlags([]string{"entrance=downloads", "id=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, notify.Arguments{"entrance": "downloads", "id": "a=b", "empty": ""}, args)

	args, err = parseArgFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, args)

	_, err = parseArgFlags([]string{"novalue"})
	require.Error(t, err)

	_, err = parseArgFlags([]string{" =x"})
	require.Error(t, err)
}
