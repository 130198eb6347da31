package styles

import "github.com/charmbracelet/lipgloss"

// Board and calendar styles
var (
	StatusError lipgloss.Style
	BarTitle    lipgloss.Style
	BarText     lipgloss.Style

	CalendarHeader   lipgloss.Style
	CalendarWeekday  lipgloss.Style
	CalendarDay      lipgloss.Style
	CalendarInactive lipgloss.Style
	CalendarToday    lipgloss.Style
)

func init() {
	rebuildBoardStyles()
}

// rebuildBoardStyles recreates the board and calendar styles from the
// current colors.
func rebuildBoardStyles() {
	StatusError = lipgloss.NewStyle().Foreground(Error).Bold(true)
	BarTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	BarText = lipgloss.NewStyle().Foreground(TextSecondary)

	CalendarHeader = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	CalendarWeekday = lipgloss.NewStyle().Foreground(TextMuted).Bold(true)
	CalendarDay = lipgloss.NewStyle().Foreground(TextPrimary)
	CalendarInactive = lipgloss.NewStyle().Foreground(TextSubtle)
	CalendarToday = lipgloss.NewStyle().Foreground(TextPrimary).Background(Primary).Bold(true)
}

// NoteCard returns the box style for a note card. bg is the note swatch.
// A selected card gets the active border; a grabbed card (mid-drag) gets a
// double accent border so it reads as lifted.
func NoteCard(bg string, width int, selected, grabbed bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	borderColor := BorderNormal
	switch {
	case grabbed:
		border = lipgloss.DoubleBorder()
		borderColor = Accent
	case selected:
		borderColor = BorderActive
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Background(lipgloss.Color(bg)).
		Foreground(InkFor(bg)).
		Padding(0, 1).
		Width(width)
}

// NoteSwatch renders a small color chip for the compose color picker.
func NoteSwatch(bg string, active bool) string {
	label := "  "
	if active {
		label = "✓ "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(InkFor(bg)).
		Padding(0, 1).
		Render(label)
}
