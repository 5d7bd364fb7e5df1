// Package color provides color detection and theming for CLI output.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Profile detects the current color profile based on environment variables and flags.
// Returns true if color output should be enabled.
//
// Color is disabled when any of:
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - noColorFlag is true (--no-color CLI flag)
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// IsTerminal returns true if the given file descriptor is a terminal.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// Theme holds lipgloss styles for status and audit output.
type Theme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Stopped  lipgloss.Style
	Pending  lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // bright green
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),             // gray
		Stopped:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Decision styles a permission decision name: allow is active, block is
// stopped and validate is pending.
func (t Theme) Decision(name string) string {
	switch name {
	case "allow":
		return t.Active.Render(name)
	case "block":
		return t.Stopped.Render(name)
	case "validate":
		return t.Pending.Render(name)
	default:
		return name
	}
}

// OnOff renders a flag as "on" with the given style or a muted "off".
func (t Theme) OnOff(on bool, style lipgloss.Style) string {
	if on {
		return style.Render("on")
	}

	return t.Muted.Render("off")
}
