package freedesktop

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hay-kot/desknotify/pkg/executil"
)

// Commands used by ExecServer.
const (
	NotifySendCmd = "notify-send"
	GDBusCmd      = "gdbus"
)

// ExecServer speaks the notification protocol through notify-send (for
// Notify) and gdbus (for the calls notify-send lacks). It serves hosts where
// the process cannot hold its own bus connection.
type ExecServer struct {
	exec    executil.Executor
	appName string
}

var _ Server = (*ExecServer)(nil)

// NewExecServer returns a server running commands through exec.
func NewExecServer(exec executil.Executor, appName string) *ExecServer {
	return &ExecServer{exec: exec, appName: appName}
}

// Notify runs notify-send --print-id and parses the returned id.
func (s *ExecServer) Notify(ctx context.Context, replaces uint32, msg Message) (uint32, error) {
	out, err := s.exec.Run(ctx, NotifySendCmd, notifySendArgs(s.appName, replaces, msg)...)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse notification id %q: %w", strings.TrimSpace(string(out)), err)
	}
	return uint32(id), nil
}

// CloseNotification calls CloseNotification through gdbus. Only errors
// carrying a D-Bus error name from the server become a RemoteError; a
// missing binary or an unreachable bus is returned as is.
func (s *ExecServer) CloseNotification(ctx context.Context, id uint32) error {
	_, err := s.gdbus(ctx, "CloseNotification", strconv.FormatUint(uint64(id), 10))
	if err == nil {
		return nil
	}
	if name := gdbusErrorName(err.Error()); name != "" {
		return &RemoteError{Name: name, Err: err}
	}
	return err
}

// gdbusPrefix marks an error reply relayed by gdbus on stderr, e.g.
// "GDBus.Error:org.freedesktop.DBus.Error.InvalidArgs: unknown id".
const gdbusPrefix = "GDBus.Error:"

// gdbusErrorName returns the D-Bus error name in msg, or "" when msg holds
// no error reply.
func gdbusErrorName(msg string) string {
	i := strings.Index(msg, gdbusPrefix)
	if i < 0 {
		return ""
	}
	name := msg[i+len(gdbusPrefix):]
	if end := strings.IndexAny(name, ": \n"); end >= 0 {
		name = name[:end]
	}
	return name
}

// Capabilities calls GetCapabilities through gdbus.
func (s *ExecServer) Capabilities(ctx context.Context) ([]string, error) {
	if _, err := s.exec.LookPath(NotifySendCmd); err != nil {
		return nil, err
	}

	out, err := s.gdbus(ctx, "GetCapabilities")
	if err != nil {
		return nil, err
	}
	return parseGVariantStrings(string(out)), nil
}

func (s *ExecServer) gdbus(ctx context.Context, method string, args ...string) ([]byte, error) {
	argv := append([]string{
		"call", "--session",
		"--dest", busName,
		"--object-path", string(objectPath),
		"--method", iface + "." + method,
	}, args...)
	return s.exec.Run(ctx, GDBusCmd, argv...)
}

func notifySendArgs(appName string, replaces uint32, msg Message) []string {
	args := []string{"--print-id", "--app-name=" + appName}
	if replaces != 0 {
		args = append(args, "--replace-id="+strconv.FormatUint(uint64(replaces), 10))
	}
	if msg.Timeout >= 0 {
		args = append(args, "--expire-time="+strconv.FormatInt(int64(msg.Timeout), 10))
	}
	if msg.Icon != "" {
		args = append(args, "--icon="+msg.Icon)
	}

	keys := make([]string, 0, len(msg.Hints))
	for k := range msg.Hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := msg.Hints[k].(type) {
		case byte:
			if k == HintUrgency {
				args = append(args, "--urgency="+urgencyName(v))
				continue
			}
			args = append(args, fmt.Sprintf("--hint=byte:%s:%d", k, v))
		case int32:
			args = append(args, fmt.Sprintf("--hint=int:%s:%d", k, v))
		case bool:
			args = append(args, fmt.Sprintf("--hint=boolean:%s:%t", k, v))
		case string:
			args = append(args, fmt.Sprintf("--hint=string:%s:%s", k, v))
		}
	}

	return append(args, "--", msg.Summary, msg.Body)
}

func urgencyName(u byte) string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyCritical:
		return "critical"
	default:
		return "normal"
	}
}

// parseGVariantStrings extracts the single-quoted strings from gdbus output
// such as "(['actions', 'body'],)".
func parseGVariantStrings(out string) []string {
	var result []string
	for {
		start := strings.IndexByte(out, '\'')
		if start < 0 {
			return result
		}
		end := strings.IndexByte(out[start+1:], '\'')
		if end < 0 {
			return result
		}
		result = append(result, out[start+1:start+1+end])
		out = out[start+end+2:]
	}
}
