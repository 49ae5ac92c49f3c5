package executil

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	ex := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := ex.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("stdout only", func(t *testing.T) {
		out, err := ex.Run(ctx, "sh", "-c", "echo out; echo err >&2")
		require.NoError(t, err)
		assert.Equal(t, "out\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := ex.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})

	t.Run("stderr in error and exit code preserved", func(t *testing.T) {
		_, err := ex.Run(ctx, "sh", "-c", "echo 'no server' >&2; exit 3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no server")

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 3, exitErr.ExitCode())
	})

	t.Run("stderr capped", func(t *testing.T) {
		_, err := ex.Run(ctx, "sh", "-c", "printf '%s' \""+strings.Repeat("A", maxStderrLen*2)+"\" >&2; exit 1")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), strings.Repeat("A", maxStderrLen+1))
	})
}

func TestRealExecutor_LookPath(t *testing.T) {
	ex := &RealExecutor{}

	_, err := ex.LookPath("sh")
	require.NoError(t, err)

	_, err = ex.LookPath("nonexistent-command-12345")
	require.Error(t, err)
}

func TestRecordingExecutor_Run(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		ex := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = ex.Run(ctx, "notify-send", "--print-id", "title")
		_, _ = ex.Run(ctx, "gdbus", "call")

		cmds := ex.Recorded()
		require.Len(t, cmds, 2)
		assert.Equal(t, "notify-send", cmds[0].Cmd)
		assert.Equal(t, []string{"--print-id", "title"}, cmds[0].Args)
	})

	t.Run("returns configured output", func(t *testing.T) {
		ex := &RecordingExecutor{
			Outputs: map[string][]byte{
				"notify-send": []byte("12\n"),
			},
		}

		out, err := ex.Run(context.Background(), "notify-send", "x")
		require.NoError(t, err)
		assert.Equal(t, []byte("12\n"), out)
	})

	t.Run("returns configured error", func(t *testing.T) {
		expectedErr := errors.New("command failed")
		ex := &RecordingExecutor{
			Errors: map[string]error{
				"gdbus": expectedErr,
			},
		}

		_, err := ex.Run(context.Background(), "gdbus", "call")
		assert.Equal(t, expectedErr, err)
	})

	t.Run("missing commands", func(t *testing.T) {
		ex := &RecordingExecutor{Missing: map[string]bool{"gdbus": true}}

		_, err := ex.LookPath("gdbus")
		require.Error(t, err)

		path, err := ex.LookPath("notify-send")
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/notify-send", path)
	})

	t.Run("reset clears commands", func(t *testing.T) {
		ex := &RecordingExecutor{}

		_, _ = ex.Run(context.Background(), "echo", "hello")
		require.Len(t, ex.Recorded(), 1)

		ex.Reset()
		assert.Empty(t, ex.Recorded())
	})
}
