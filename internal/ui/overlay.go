// Package ui provides shared TUI components: dialogs, overlay compositing
// and width-aware text helpers.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle is applied to the background behind a modal. Existing ANSI codes
// are stripped first because SGR 2 (faint) does not combine reliably with
// colored text.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// dimLine strips ANSI codes and applies dim gray styling.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow places fg over bg at column x. When dim is set the visible
// parts of bg are dimmed.
func compositeRow(bg, fg string, x, fgWidth int, dim bool) string {
	stripped := ansi.Strip(bg)
	bgWidth := ansi.StringWidth(stripped)
	paint := func(s string) string {
		if dim {
			return DimStyle.Render(s)
		}
		return s
	}

	var b strings.Builder
	if x > 0 {
		left := ansi.Truncate(stripped, x, "")
		b.WriteString(paint(left))
		if w := ansi.StringWidth(left); w < x {
			b.WriteString(strings.Repeat(" ", x-w))
		}
	}
	b.WriteString(fg)
	if right := x + fgWidth; bgWidth > right {
		b.WriteString(paint(ansi.Cut(stripped, right, bgWidth)))
	}
	return b.String()
}

// OverlayModal composites a modal centered on top of a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	startX := max(0, (width-modalWidth)/2)
	startY := max(0, (height-len(modalLines))/2)

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	out := make([]string, height)
	for y := range height {
		row := y - startY
		if row >= 0 && row < len(modalLines) {
			out[y] = compositeRow(bgLines[y], modalLines[row], startX, modalWidth, true)
		} else {
			out[y] = dimLine(bgLines[y])
		}
	}
	return strings.Join(out, "\n")
}

// OverlayToast draws toast right-aligned on the last line of view without
// dimming anything.
func OverlayToast(view, toast string, width int) string {
	if toast == "" {
		return view
	}
	lines := strings.Split(view, "\n")
	last := len(lines) - 1
	tw := ansi.StringWidth(toast)
	if tw > width {
		toast = ansi.Truncate(toast, width, "…")
		tw = ansi.StringWidth(toast)
	}
	lines[last] = compositeRow(lines[last], toast, max(0, width-tw), tw, false)
	return strings.Join(lines, "\n")
}
