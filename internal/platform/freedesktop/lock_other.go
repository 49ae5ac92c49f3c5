//go:build !unix

package freedesktop

// lockFile is a no-op where flock is unavailable. The freedesktop protocol
// only exists on unix desktops.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
