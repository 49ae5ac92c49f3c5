// Package urlutil holds URL checks shared by notification content builders.
package urlutil

import (
	"net/url"
	"strings"
)

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}

// Validator implements notify.URLValidator with IsHTTPURL.
type Validator struct{}

func (Validator) IsHTTPURL(s string) bool { return IsHTTPURL(s) }
