package freedesktop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

func TestRender_Text(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	content := notify.NewContentBuilder().
		AddText("Update ready", notify.TextStyleHeader).
		AddText("Version 2.1 is available", notify.TextStyleBody).
		AddHeroImage("https://example.com/banner.png").
		AddAttribution("via updater").
		SetTimestamp(ts).
		SetResident(true).
		Content()

	msg := Render(content, notify.Resolve(notify.CategoryUpdateAvailable), 5*time.Second)

	assert.Equal(t, "Update ready", msg.Summary)
	assert.Equal(t, "Version 2.1 is available\nvia updater", msg.Body)
	assert.Equal(t, []string{DefaultAction, "Open"}, msg.Actions)
	assert.Equal(t, int32(5000), msg.Timeout)
	assert.Equal(t, UrgencyNormal, msg.Hints[HintUrgency])
	assert.Equal(t, "https://example.com/banner.png", msg.Hints[HintImagePath])
	assert.Equal(t, true, msg.Hints[HintResident])
	assert.Equal(t, "2026-03-01T12:00:00Z", msg.Hints[HintTimestamp])
	assert.Empty(t, msg.Icon)
	assert.NotContains(t, msg.Hints, HintCategory)
}

func TestRender_InlineImageBecomesIcon(t *testing.T) {
	content := notify.NewContentBuilder().
		AddText("Hi", notify.TextStyleHeader).
		AddInlineImage("https://example.com/avatar.png").
		Content()

	msg := Render(content, notify.Resolve(notify.CategoryNewMessage), 0)

	assert.Equal(t, "https://example.com/avatar.png", msg.Icon)
	assert.NotContains(t, msg.Hints, HintImagePath)
	assert.Equal(t, "im.received", msg.Hints[HintCategory])
	assert.Equal(t, int32(-1), msg.Timeout)
}

func TestRender_Progress(t *testing.T) {
	content := notify.NewContentBuilder().
		AddProgressBar("game.zip", map[string]string{
			notify.KeyProgressValue:       "0.25",
			notify.KeyProgressValueString: "25%",
			notify.KeyProgressStatus:      "Downloading",
		}).
		Content()

	msg := Render(content, notify.Resolve(notify.CategoryDownloadProgress), 0)

	assert.Equal(t, "game.zip", msg.Summary)
	assert.Equal(t, "Downloading 25%", msg.Body)
	assert.Equal(t, UrgencyLow, msg.Hints[HintUrgency])
	assert.Equal(t, int32(25), msg.Hints[HintValue])
	assert.Equal(t, "transfer", msg.Hints[HintCategory])
}

func TestMessage_WithProgress(t *testing.T) {
	base := Message{Summary: "game.zip", Hints: map[string]any{HintUrgency: UrgencyLow}}

	tests := []struct {
		name      string
		data      map[string]string
		wantValue any
		wantBody  string
	}{
		{
			name:      "half",
			data:      map[string]string{notify.KeyProgressValue: "0.50", notify.KeyProgressValueString: "50%", notify.KeyProgressStatus: "Downloading"},
			wantValue: int32(50),
			wantBody:  "Downloading 50%",
		},
		{
			name:      "clamped above one",
			data:      map[string]string{notify.KeyProgressValue: "1.70"},
			wantValue: int32(100),
			wantBody:  "",
		},
		{
			name:      "unparseable value",
			data:      map[string]string{notify.KeyProgressValue: "abc", notify.KeyProgressStatus: "Paused"},
			wantValue: nil,
			wantBody:  "Paused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.WithProgress(tt.data)
			assert.Equal(t, tt.wantValue, got.Hints[HintValue])
			assert.Equal(t, tt.wantBody, got.Body)
			assert.Equal(t, "game.zip", got.Summary)
		})
	}

	assert.NotContains(t, base.Hints, HintValue, "original hints must not be modified")
}
