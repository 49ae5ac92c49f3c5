package notify

import "strings"

// DefaultProgressStatus is shown when a status text carries no usable status segment.
const DefaultProgressStatus = "Downloading…"

// DecodeProgressText splits a human readable progress line such as
// "Downloading: 42%" into a status label and a value label.
//
// The text is split on ASCII and full-width colons. Segments are trimmed and
// blank ones dropped. The last segment is the value label and the first is
// the status. When the status equals the value label (single segment or
// "X:X") DefaultProgressStatus is used instead.
func DecodeProgressText(raw string) (status, valueLabel string) {
	return decodeProgressText(raw, DefaultProgressStatus)
}

func decodeProgressText(raw, fallback string) (status, valueLabel string) {
	var segments []string
	for _, seg := range strings.FieldsFunc(raw, isProgressSeparator) {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return fallback, ""
	}

	valueLabel = segments[len(segments)-1]
	status = segments[0]
	if status == valueLabel {
		status = fallback
	}
	return status, valueLabel
}

func isProgressSeparator(r rune) bool {
	return r == ':' || r == '：'
}
