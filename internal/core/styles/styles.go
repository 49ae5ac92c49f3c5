// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Status icons.
const (
	IconPass = "✔"
	IconWarn = "●"
	IconFail = "✘"
	IconBell = "🔔"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	TextPrimaryBoldStyle    lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSecondaryStyle      lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	TableHeaderStyle lipgloss.Style
	TableCellStyle   lipgloss.Style
	TableBorderStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TableHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().Foreground(p.Foreground).Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// SetPlain replaces every style with an unstyled one. Used when output is
// not a terminal.
func SetPlain() {
	plain := lipgloss.NewStyle()

	TextPrimaryBoldStyle = plain
	TextForegroundBoldStyle = plain
	TextForegroundStyle = plain
	TextMutedStyle = plain
	TextSecondaryStyle = plain
	TextSuccessStyle = plain
	TextWarningStyle = plain
	TextErrorStyle = plain

	TableHeaderStyle = plain.Padding(0, 1)
	TableCellStyle = plain.Padding(0, 1)
	TableBorderStyle = plain
}

// Configure applies theme to output written to f, or plain styles when f is
// not a terminal. An unknown theme falls back to DefaultTheme.
func Configure(f *os.File, theme string) {
	if !term.IsTerminal(int(f.Fd())) {
		SetPlain()
		return
	}

	p, ok := GetPalette(theme)
	if !ok {
		p = themes[DefaultTheme]
	}
	SetTheme(p)
}

// StatusIcon returns the styled icon for a check status name.
func StatusIcon(status string) string {
	switch status {
	case "pass":
		return TextSuccessStyle.Render(IconPass)
	case "warn":
		return TextWarningStyle.Render(IconWarn)
	default:
		return TextErrorStyle.Render(IconFail)
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
