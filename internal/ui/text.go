package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens plain text to width display cells, appending an
// ellipsis when it had to cut. Wide runes (CJK, emoji) count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// WrapLines word-wraps plain text to width cells and returns at most
// maxLines lines; the last kept line is ellipsized if text was dropped.
// maxLines <= 0 means no limit.
func WrapLines(s string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, wrapParagraph(para, width)...)
	}
	if maxLines > 0 && len(out) > maxLines {
		out = out[:maxLines]
		last := out[maxLines-1]
		if runewidth.StringWidth(last)+1 > width {
			last = runewidth.Truncate(last, width-1, "")
		}
		out[maxLines-1] = last + "…"
	}
	return out
}

func wrapParagraph(para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		for ww > width {
			// Hard-break words longer than a whole line.
			if curW > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curW = 0
			}
			head := runewidth.Truncate(w, width, "")
			lines = append(lines, head)
			w = w[len(head):]
			ww = runewidth.StringWidth(w)
		}
		switch {
		case ww == 0:
		case curW == 0:
			cur.WriteString(w)
			curW = ww
		case curW+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(w)
			curW += 1 + ww
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			curW = ww
		}
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// PadRight pads plain text with spaces to exactly width cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
