package freedesktop

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/pkg/executil"
)

func TestExecServer_Notify(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{NotifySendCmd: []byte("42\n")},
	}
	server := NewExecServer(exec, "desknotify")

	id, err := server.Notify(context.Background(), 17, Message{
		Summary: "game.zip",
		Body:    "Downloading 40%",
		Icon:    "/tmp/icon.png",
		Hints: map[string]any{
			HintUrgency:  UrgencyLow,
			HintValue:    int32(40),
			HintCategory: "transfer",
			HintResident: true,
		},
		Timeout: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)

	cmds := exec.Recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, NotifySendCmd, cmds[0].Cmd)
	assert.Equal(t, []string{
		"--print-id",
		"--app-name=desknotify",
		"--replace-id=17",
		"--expire-time=5000",
		"--icon=/tmp/icon.png",
		"--hint=string:category:transfer",
		"--hint=boolean:resident:true",
		"--urgency=low",
		"--hint=int:value:40",
		"--",
		"game.zip",
		"Downloading 40%",
	}, cmds[0].Args)
}

func TestExecServer_NotifyNewDefaults(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{NotifySendCmd: []byte("3")},
	}
	server := NewExecServer(exec, "desknotify")

	_, err := server.Notify(context.Background(), 0, Message{Summary: "hi", Timeout: -1})
	require.NoError(t, err)
	assert.Equal(t, []string{"--print-id", "--app-name=desknotify", "--", "hi", ""}, exec.Recorded()[0].Args)
}

func TestExecServer_NotifyBadOutput(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{NotifySendCmd: []byte("")},
	}
	server := NewExecServer(exec, "desknotify")

	_, err := server.Notify(context.Background(), 0, Message{Summary: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse notification id")
}

func TestExecServer_CloseNotification(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	server := NewExecServer(exec, "desknotify")

	require.NoError(t, server.CloseNotification(context.Background(), 8))
	cmds := exec.Recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, GDBusCmd, cmds[0].Cmd)
	assert.Equal(t, []string{
		"call", "--session",
		"--dest", "org.freedesktop.Notifications",
		"--object-path", "/org/freedesktop/Notifications",
		"--method", "org.freedesktop.Notifications.CloseNotification",
		"8",
	}, cmds[0].Args)

}

func TestExecServer_CloseNotificationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantRemote string
	}{
		{
			name:       "server error reply",
			err:        errors.New("exec gdbus: Error: GDBus.Error:org.freedesktop.DBus.Error.InvalidArgs: Invalid id: exit status 1"),
			wantRemote: "org.freedesktop.DBus.Error.InvalidArgs",
		},
		{
			name: "command failed",
			err:  errors.New("exit status 1"),
		},
		{
			name: "no session bus",
			err:  errors.New("exec gdbus: Error connecting: Cannot autolaunch D-Bus without X11 $DISPLAY: exit status 1"),
		},
		{
			name: "missing binary",
			err:  errors.New(`exec gdbus: exec: "gdbus": executable file not found in $PATH`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &executil.RecordingExecutor{Errors: map[string]error{GDBusCmd: tt.err}}
			server := NewExecServer(exec, "desknotify")

			err := server.CloseNotification(context.Background(), 8)
			require.Error(t, err)

			var remote *RemoteError
			if tt.wantRemote == "" {
				assert.False(t, errors.As(err, &remote), "fault must not look like a server rejection")
				assert.Equal(t, tt.err, err)
				return
			}
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.wantRemote, remote.Name)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGDBusErrorName(t *testing.T) {
	assert.Equal(t, "org.freedesktop.Notifications.Error.Gone",
		gdbusErrorName("GDBus.Error:org.freedesktop.Notifications.Error.Gone"))
	assert.Equal(t, "org.freedesktop.DBus.Error.InvalidArgs",
		gdbusErrorName("Error: GDBus.Error:org.freedesktop.DBus.Error.InvalidArgs: bad id"))
	assert.Empty(t, gdbusErrorName("exit status 1"))
}

func TestExecServer_Capabilities(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{GDBusCmd: []byte("(['actions', 'body', 'body-markup'],)\n")},
	}
	server := NewExecServer(exec, "desknotify")

	caps, err := server.Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"actions", "body", "body-markup"}, caps)

	exec.Missing = map[string]bool{NotifySendCmd: true}
	_, err = server.Capabilities(context.Background())
	require.Error(t, err)
}

func TestParseGVariantStrings(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "(@as [],)", want: nil},
		{in: "(['body'],)", want: []string{"body"}},
		{in: "(['a', 'b'", want: []string{"a", "b"}},
		{in: "(['a', 'unterminated", want: []string{"a"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseGVariantStrings(tt.in), tt.in)
	}
}

func TestExecServer_BackendKeepsSlotWhenGDBusFails(t *testing.T) {
	ctx := context.Background()
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{NotifySendCmd: []byte("12\n")},
	}
	slots, err := OpenSlotStore(filepath.Join(t.TempDir(), "slots.yaml"))
	require.NoError(t, err)
	b := NewBackend(NewExecServer(exec, "desknotify"), slots, nil, Options{}, zerolog.Nop())
	id := notify.Resolve(notify.CategoryInfo)

	require.NoError(t, b.Show(ctx, textContent("hi"), id))

	exec.Errors = map[string]error{GDBusCmd: errors.New(`exec gdbus: exec: "gdbus": executable file not found in $PATH`)}
	require.Error(t, b.Remove(ctx, id))
	require.Error(t, b.Clear(ctx))

	slot, ok := slots.Get(id)
	require.True(t, ok, "slot kept while the notification is still shown")
	assert.Equal(t, uint32(12), slot.ID)

	exec.Errors = map[string]error{GDBusCmd: errors.New("Error: GDBus.Error:org.freedesktop.DBus.Error.InvalidArgs: unknown id")}
	require.NoError(t, b.Remove(ctx, id))
	_, ok = slots.Get(id)
	assert.False(t, ok)
}
