package report

import (
	"strings"
	"time"

	"github.com/vocal-dev/vocal/internal/audit"
	"github.com/vocal-dev/vocal/internal/color"
)

const (
	defaultDetailWidth = 48
	minDetailWidth     = 16

	// Columns other than Detail plus borders and padding.
	auditFixedWidth = 70
)

// RenderAudit renders audit entries oldest first. width is the terminal
// width used to size the detail column; 0 uses a fixed default.
func RenderAudit(entries []*audit.Entry, now time.Time, width int, theme color.Theme) string {
	if len(entries) == 0 {
		return theme.Muted.Render("No audit entries.")
	}

	detailWidth := defaultDetailWidth
	if width > 0 {
		detailWidth = max(width-auditFixedWidth, minDetailWidth)
	}

	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		rows = append(rows, []string{
			Age(e.Timestamp, now),
			e.Event,
			e.Tool,
			theme.Decision(e.Decision),
			Truncate(entryDetail(e), detailWidth),
		})
	}

	return RenderTable([]string{"When", "Event", "Tool", "Decision", "Detail"}, rows, theme)
}

// entryDetail picks the most useful description of what the event touched.
func entryDetail(e *audit.Entry) string {
	var parts []string

	switch {
	case len(e.Commands) > 0:
		parts = append(parts, strings.Join(e.Commands, " | "))
	case e.FilePath != "":
		parts = append(parts, e.FilePath)
	}

	if len(e.Writes) > 0 {
		parts = append(parts, "> "+strings.Join(e.Writes, ", "))
	}

	if e.Rule != "" {
		parts = append(parts, "["+e.Rule+"]")
	}

	if e.Note != "" {
		parts = append(parts, e.Note)
	}

	return strings.Join(parts, " ")
}
