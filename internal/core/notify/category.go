package notify

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category name does not match any known category.
var ErrUnknownCategory = errors.New("unknown notification category")

// Category identifies the logical kind of a notification.
// ENUM(update-available, download-progress, download-complete, new-message, announcement, info).
type Category string

const (
	CategoryUpdateAvailable  Category = "update-available"
	CategoryDownloadProgress Category = "download-progress"
	CategoryDownloadComplete Category = "download-complete"
	CategoryNewMessage       Category = "new-message"
	CategoryAnnouncement     Category = "announcement"
	CategoryInfo             Category = "info"
)

// Channel groups related categories. It is the group half of an Identity.
type Channel string

const (
	ChannelUpdates   Channel = "updates"
	ChannelDownloads Channel = "downloads"
	ChannelMessages  Channel = "messages"
	ChannelGeneral   Channel = "general"
)

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryUpdateAvailable,
		CategoryDownloadProgress,
		CategoryDownloadComplete,
		CategoryNewMessage,
		CategoryAnnouncement,
		CategoryInfo,
	}
}

// ParseCategory converts a category name into a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryUpdateAvailable, CategoryDownloadProgress, CategoryDownloadComplete,
		CategoryNewMessage, CategoryAnnouncement, CategoryInfo:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Channel returns the channel the category belongs to. Unknown categories
// fall into the general channel.
func (c Category) Channel() Channel {
	switch c {
	case CategoryUpdateAvailable:
		return ChannelUpdates
	case CategoryDownloadProgress, CategoryDownloadComplete:
		return ChannelDownloads
	case CategoryNewMessage:
		return ChannelMessages
	default:
		return ChannelGeneral
	}
}

func (ch Channel) String() string { return string(ch) }
