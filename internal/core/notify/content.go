package notify

import (
	"fmt"
	"time"
)

// ImageMode controls how an image is attached to a notification.
// ENUM(none, hero, inline).
type ImageMode string

const (
	ImageNone   ImageMode = "none"
	ImageHero   ImageMode = "hero"
	ImageInline ImageMode = "inline"
)

// ParseImageMode converts a mode name into an ImageMode. The empty string
// maps to ImageNone.
func ParseImageMode(s string) (ImageMode, error) {
	switch m := ImageMode(s); m {
	case "", ImageNone:
		return ImageNone, nil
	case ImageHero, ImageInline:
		return m, nil
	default:
		return "", fmt.Errorf("invalid image mode %q (want none, hero or inline)", s)
	}
}

// TextStyle is the presentation hint for a text block.
type TextStyle string

const (
	TextStyleHeader TextStyle = "header"
	TextStyleBody   TextStyle = "body"
)

// ActivationType describes how the application is brought up when the user
// activates a notification.
type ActivationType string

const (
	ActivationForeground ActivationType = "foreground"
	ActivationBackground ActivationType = "background"
)

// Progress data keys bound into a progress bar. Updates carry values for
// exactly these keys.
const (
	KeyProgressValue       = "progressValue"
	KeyProgressValueString = "progressValueString"
	KeyProgressStatus      = "progressStatus"
)

// ContentSpec is the caller's description of a notification. It is consumed
// once by Adapter.Build.
type ContentSpec struct {
	Title       string
	Body        string
	ImageURI    string
	ImageMode   ImageMode
	Attribution string
	Timestamp   time.Time // zero means "use post time"
	Category    Category
	Arguments   Arguments
	Resident    bool // keep the notification after activation
}

// TextBlock is a single line of notification text.
type TextBlock struct {
	Text  string
	Style TextStyle
}

// Image is an image attached to a notification.
type Image struct {
	URI  string
	Mode ImageMode
}

// ProgressBar binds a progress bar to the data keys of a notification.
// Title is shown above the bar.
type ProgressBar struct {
	Title string
}

// Content is the platform independent notification payload produced by a
// ContentBuilder. Platforms render it; callers treat it as immutable.
type Content struct {
	Texts       []TextBlock
	Image       *Image
	Attribution string
	Timestamp   time.Time
	Activation  ActivationType
	Arguments   Arguments
	Resident    bool

	// Progress is set for progress-bound notifications. Data holds the
	// initial values for the bound keys.
	Progress *ProgressBar
	Data     map[string]string
}

// Title returns the first header text, or the first text when no header exists.
func (c Content) Title() string {
	for _, t := range c.Texts {
		if t.Style == TextStyleHeader {
			return t.Text
		}
	}
	if len(c.Texts) > 0 {
		return c.Texts[0].Text
	}
	return ""
}

// Body joins all body text blocks with newlines.
func (c Content) Body() string {
	var body string
	for _, t := range c.Texts {
		if t.Style != TextStyleBody {
			continue
		}
		if body != "" {
			body += "\n"
		}
		body += t.Text
	}
	return body
}

// ContentBuilder assembles Content step by step.
type ContentBuilder struct {
	content Content
}

// NewContentBuilder returns a builder for a foreground-activated notification.
func NewContentBuilder() *ContentBuilder {
	return &ContentBuilder{content: Content{Activation: ActivationForeground}}
}

// AddText appends a text block.
func (b *ContentBuilder) AddText(text string, style TextStyle) *ContentBuilder {
	b.content.Texts = append(b.content.Texts, TextBlock{Text: text, Style: style})
	return b
}

// AddHeroImage attaches a large image shown above the text.
func (b *ContentBuilder) AddHeroImage(uri string) *ContentBuilder {
	b.content.Image = &Image{URI: uri, Mode: ImageHero}
	return b
}

// AddInlineImage attaches an image shown inline with the text.
func (b *ContentBuilder) AddInlineImage(uri string) *ContentBuilder {
	b.content.Image = &Image{URI: uri, Mode: ImageInline}
	return b
}

// AddAttribution sets the attribution line.
func (b *ContentBuilder) AddAttribution(text string) *ContentBuilder {
	b.content.Attribution = text
	return b
}

// SetTimestamp overrides the displayed timestamp.
func (b *ContentBuilder) SetTimestamp(ts time.Time) *ContentBuilder {
	b.content.Timestamp = ts
	return b
}

// SetArguments sets the activation arguments.
func (b *ContentBuilder) SetArguments(args Arguments) *ContentBuilder {
	b.content.Arguments = args
	return b
}

// SetResident keeps the notification around after it is activated.
func (b *ContentBuilder) SetResident(resident bool) *ContentBuilder {
	b.content.Resident = resident
	return b
}

// AddProgressBar binds a progress bar to the progress data keys and seeds
// the initial data values.
func (b *ContentBuilder) AddProgressBar(title string, data map[string]string) *ContentBuilder {
	b.content.Progress = &ProgressBar{Title: title}
	b.content.Data = make(map[string]string, len(data))
	for k, v := range data {
		b.content.Data[k] = v
	}
	return b
}

// Content returns the assembled content.
func (b *ContentBuilder) Content() Content {
	return b.content
}
