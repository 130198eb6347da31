package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// noteInkLight is used on dark note colors written by other tools.
var noteInkLight = lipgloss.Color("#F9FAFB")

// minInkContrast is the WCAG AA ratio for body text.
const minInkContrast = 4.5

// Luminance returns the relative luminance (0-1) of a hex color.
// Unparseable colors count as white.
func Luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 1
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG 2.0 contrast ratio between two colors (1 to 21).
func ContrastRatio(fg, bg string) float64 {
	l1 := Luminance(fg)
	l2 := Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// InkFor picks the text color for a note background: NoteInk unless it is
// unreadable on bg, then whichever of the two inks contrasts more.
func InkFor(bg string) lipgloss.Color {
	dark := string(NoteInk)
	if ContrastRatio(dark, bg) >= minInkContrast {
		return NoteInk
	}
	if ContrastRatio(string(noteInkLight), bg) > ContrastRatio(dark, bg) {
		return noteInkLight
	}
	return NoteInk
}
