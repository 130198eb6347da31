package note

import (
	"fmt"
	"strings"
)

// Color is a note background swatch, stored as a hex string.
type Color string

// Swatch is one entry of the color picker.
type Swatch struct {
	Name  string
	Color Color
}

// DefaultColor is used for notes created without a selection.
const DefaultColor Color = "#ffffff"

// Palette is the fixed, ordered set of selectable swatches.
var Palette = []Swatch{
	{Name: "Default", Color: DefaultColor},
	{Name: "Yellow", Color: "#fff3b0"},
	{Name: "Green", Color: "#d3f8d3"},
	{Name: "Blue", Color: "#cfe8ff"},
	{Name: "Pink", Color: "#ffd6e7"},
	{Name: "Purple", Color: "#e6d9ff"},
}

// OrDefault returns c, or DefaultColor if c is unset.
func (c Color) OrDefault() Color {
	if c == "" {
		return DefaultColor
	}
	return c
}

// SwatchIndex returns the palette position of c, or -1.
func SwatchIndex(c Color) int {
	for i, s := range Palette {
		if strings.EqualFold(string(s.Color), string(c)) {
			return i
		}
	}
	return -1
}

// ParseColor accepts a palette hex value or swatch name (case-insensitive).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	for _, sw := range Palette {
		if strings.EqualFold(sw.Name, s) || strings.EqualFold(string(sw.Color), s) {
			return sw.Color, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", s)
}
