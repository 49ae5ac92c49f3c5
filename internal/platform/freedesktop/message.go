package freedesktop

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

// Urgency levels defined by the notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// DefaultAction is the action key servers report when the notification body is clicked.
const DefaultAction = "default"

// Hint names used by the renderer.
const (
	HintValue     = "value"
	HintUrgency   = "urgency"
	HintImagePath = "image-path"
	HintResident  = "resident"
	HintCategory  = "category"
	HintTimestamp = "x-desknotify-timestamp"
)

// Message is a notification in the shape of the Notify call.
type Message struct {
	Summary string
	Body    string
	Icon    string
	Actions []string
	// Hints values are string, bool, byte or int32.
	Hints map[string]any
	// Timeout in milliseconds, -1 for the server default.
	Timeout int32
}

// Render converts content posted under id into a Message.
func Render(content notify.Content, id notify.Identity, timeout time.Duration) Message {
	msg := Message{
		Actions: []string{DefaultAction, "Open"},
		Hints:   map[string]any{HintUrgency: UrgencyNormal},
		Timeout: timeoutMillis(timeout),
	}

	if cat := serverCategory(id.Group); cat != "" {
		msg.Hints[HintCategory] = cat
	}

	if content.Progress != nil {
		msg.Summary = content.Progress.Title
		msg.Hints[HintUrgency] = UrgencyLow
		return msg.WithProgress(content.Data)
	}

	msg.Summary = content.Title()
	msg.Body = content.Body()
	if content.Attribution != "" {
		if msg.Body != "" {
			msg.Body += "\n"
		}
		msg.Body += content.Attribution
	}

	if content.Image != nil {
		switch content.Image.Mode {
		case notify.ImageHero:
			msg.Hints[HintImagePath] = content.Image.URI
		case notify.ImageInline:
			msg.Icon = content.Image.URI
		}
	}

	if content.Resident {
		msg.Hints[HintResident] = true
	}

	if !content.Timestamp.IsZero() {
		msg.Hints[HintTimestamp] = content.Timestamp.Format(time.RFC3339)
	}

	return msg
}

// WithProgress returns a copy of m showing the bound progress data.
func (m Message) WithProgress(data map[string]string) Message {
	hints := make(map[string]any, len(m.Hints)+1)
	for k, v := range m.Hints {
		hints[k] = v
	}
	m.Hints = hints

	if f, err := strconv.ParseFloat(data[notify.KeyProgressValue], 64); err == nil {
		m.Hints[HintValue] = int32(math.Round(math.Min(math.Max(f, 0), 1) * 100))
	}

	m.Body = strings.TrimSpace(data[notify.KeyProgressStatus] + " " + data[notify.KeyProgressValueString])
	return m
}

func timeoutMillis(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	if ms := d.Milliseconds(); ms < math.MaxInt32 {
		return int32(ms)
	}
	return math.MaxInt32
}

// serverCategory maps a channel onto a category from the notification spec.
func serverCategory(group string) string {
	switch notify.Channel(group) {
	case notify.ChannelDownloads:
		return "transfer"
	case notify.ChannelMessages:
		return "im.received"
	default:
		return ""
	}
}
