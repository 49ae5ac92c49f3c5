package notify

import (
	"sort"
	"strings"
)

// Well-known activation argument keys.
const (
	ArgCategory = "category"
	ArgEntrance = "entrance"
	ArgURI      = "uri"
)

// Arguments are the key/value pairs attached to a notification and handed
// back to the application when the user activates it. The encoded form is
// "key=value;key=value" with '%', ';' and '=' percent-escaped.
type Arguments map[string]string

var (
	argEscaper   = strings.NewReplacer("%", "%25", ";", "%3B", "=", "%3D")
	argUnescaper = strings.NewReplacer("%3B", ";", "%3D", "=", "%25", "%")
)

// Encode returns the wire form of the arguments with keys in sorted order.
func (a Arguments) Encode() string {
	if len(a) == 0 {
		return ""
	}

	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(argEscaper.Replace(k))
		b.WriteByte('=')
		b.WriteString(argEscaper.Replace(a[k]))
	}
	return b.String()
}

// Get returns the value for key, or "" when absent.
func (a Arguments) Get(key string) string {
	return a[key]
}

// ParseArguments decodes the wire form produced by Encode. Pairs without a
// '=' are kept with an empty value; empty pairs are skipped.
func ParseArguments(s string) Arguments {
	args := Arguments{}
	for _, pair := range strings.Split(s, ";") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		args[argUnescaper.Replace(k)] = argUnescaper.Replace(v)
	}
	return args
}
