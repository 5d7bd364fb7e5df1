// Package report renders the status and audit views as terminal tables.
package report

import (
	"bytes"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/vocal-dev/vocal/internal/color"
)

const ellipsis = "…"

// RenderTable draws headers and rows in a rounded table with muted borders.
// Cells may carry ANSI styling; widths are measured on the visible text.
func RenderTable(headers []string, rows [][]string, theme color.Theme) string {
	if len(rows) == 0 {
		return ""
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Row().Formatting().WithAutoWrap(tw.WrapNone).Build().
			Build().Build()),
	)

	t.Header(headers)

	widths := columnWidths(rows)

	for _, row := range rows {
		padded := make([]string, len(row))
		for i, cell := range row {
			padded[i] = padToWidth(cell, widths[i])
		}

		_ = t.Append(padded)
	}

	_ = t.Render()

	return dimBorders(strings.TrimRight(buf.String(), "\n"), theme)
}

// Truncate shortens s to at most width display cells, ending with an
// ellipsis when cut. A non-positive width leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, ellipsis)
}

// TerminalWidth returns the width of stdout, or 0 when it is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(
		int(os.Stdout.Fd()), //nolint:gosec // fd fits int
	); err == nil && w > 0 {
		return w
	}

	return 0
}

func columnWidths(rows [][]string) map[int]int {
	widths := make(map[int]int)

	for _, row := range rows {
		for i, cell := range row {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	return widths
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// padToWidth right-pads s so styled and plain cells line up.
func padToWidth(s string, w int) string {
	visible := visibleWidth(s)
	if visible >= w {
		return s
	}

	return s + strings.Repeat(" ", w-visible)
}

func dimBorders(s string, theme color.Theme) string {
	for _, ch := range []string{
		"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼",
	} {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}
