package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Equal(t, []string{"catppuccin", "gruvbox", "onedark", "tokyo-night"}, names)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}
	_, ok := GetPalette("solarized")
	assert.False(t, ok)
}

func TestConfigure_NonTerminalIsPlain(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	Configure(f, "gruvbox")

	assert.Equal(t, "ok", TextSuccessStyle.Render("ok"))
	assert.Equal(t, IconFail, StatusIcon("fail"))
	assert.Equal(t, IconPass, StatusIcon("pass"))
}
