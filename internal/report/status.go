package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/vocal-dev/vocal/internal/color"
	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/internal/state"
)

const durationUnits = 2

// Status is everything the status view shows.
type Status struct {
	Snapshot        state.Snapshot
	CycleCount      int
	MaxCycles       int
	WindowRemaining time.Duration
	Session         *session.Info
	StateDir        string
	Now             time.Time

	// InjectorBinary is the tmux executable; empty hides the line.
	InjectorBinary    string
	InjectorAvailable bool
}

// RenderStatus renders the mode line, the marker table and the last
// recorded session.
func RenderStatus(s *Status, theme color.Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Hands-free:"), modeLabel(s.Snapshot, theme))
	fmt.Fprintf(&b, "%s %s\n\n", theme.Label.Render("State dir:"), theme.Muted.Render(s.StateDir))

	rows := [][]string{
		markerRow("hands-free", s.Snapshot.HandsFree, theme.Active, s.Now, theme),
		markerRow("emergency-stop", s.Snapshot.EmergencyStop, theme.Stopped, s.Now, theme),
		markerRow("cycle-trigger", s.Snapshot.CycleTrigger, theme.Pending, s.Now, theme),
	}

	b.WriteString(RenderTable([]string{"Marker", "State", "Since"}, rows, theme))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d/%d", theme.Label.Render("Cycles:"), s.CycleCount, s.MaxCycles)

	if s.WindowRemaining > 0 {
		fmt.Fprintf(&b, " (window closes in %s)", FormatDuration(s.WindowRemaining))
	}

	b.WriteString("\n")

	if s.InjectorBinary != "" {
		found := theme.Active.Render("found")
		if !s.InjectorAvailable {
			found = theme.Stopped.Render("not found on PATH")
		}

		fmt.Fprintf(&b, "%s %s (%s)\n", theme.Label.Render("Injector:"), s.InjectorBinary, found)
	}

	b.WriteString(theme.Label.Render("Session:") + " ")

	if s.Session == nil {
		b.WriteString(theme.Muted.Render("none recorded"))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString(sessionLine(s.Session, s.Now))
	b.WriteString("\n")

	return b.String()
}

// FormatDuration renders d with its two most significant units.
func FormatDuration(d time.Duration) string {
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(durationUnits).String()
}

// Age renders how long ago at was, relative to now.
func Age(at, now time.Time) string {
	if at.IsZero() {
		return "-"
	}

	return humanize.RelTime(at, now, "ago", "from now")
}

func modeLabel(snap state.Snapshot, theme color.Theme) string {
	switch {
	case snap.EmergencyStop.Set:
		return theme.Stopped.Render("STOPPED")
	case snap.HandsFreeActive:
		return theme.Active.Render("ACTIVE")
	default:
		return theme.Inactive.Render("inactive")
	}
}

func markerRow(
	name string,
	status state.MarkerStatus,
	style lipgloss.Style,
	now time.Time,
	theme color.Theme,
) []string {
	since := "-"
	if status.Set {
		since = Age(status.Since, now)
	}

	return []string{name, theme.OnOff(status.Set, style), since}
}

func sessionLine(info *session.Info, now time.Time) string {
	parts := []string{info.SessionID}

	// Only a pane can be targeted by the injector.
	switch {
	case info.TmuxPane != "":
		parts = append(parts, "pane "+info.TmuxPane)
	case info.InTmux():
		parts = append(parts, "no tmux pane recorded, inject has no target")
	default:
		parts = append(parts, "not in tmux, inject has no target")
	}

	if info.CWD != "" {
		parts = append(parts, info.CWD)
	}

	parts = append(parts, "saved "+Age(info.SavedAt(), now))

	return strings.Join(parts, ", ")
}
