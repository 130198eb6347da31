package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notedeck/internal/styles"
)

const (
	screenMarginX = 4 // columns kept free around the box
	screenMarginY = 6 // rows kept free around the box (border + breathing room)
	titleLines    = 2 // title + its bottom margin
	hintText      = "tab next field · enter confirm · esc cancel"
)

// frame is the geometry of one render.
type frame struct {
	outer   int // box width including border and padding
	inner   int // width available to sections
	bodyMax int // rows available to the scrolling body
}

// measure fits the requested width and the chrome into the screen.
func (m *Modal) measure(screenW, screenH int) frame {
	maxW := max(1, screenW-screenMarginX)
	outer := clamp(m.width, min(MinModalWidth, maxW), maxW)

	chrome := 0
	if m.title != "" {
		chrome += titleLines
	}
	if m.showHints {
		chrome++
	}
	if m.customFooter != "" {
		chrome += lipgloss.Height(m.customFooter)
	}

	return frame{
		outer:   outer,
		inner:   max(1, outer-ModalPadding),
		bodyMax: max(1, screenH-screenMarginY-chrome),
	}
}

// renderBody renders every section at width, records focus order and the
// row of each focusable, and returns the joined body and its height.
func (m *Modal) renderBody(width int) (string, int) {
	focusID := m.currentFocusID()
	m.focusIDs = m.focusIDs[:0]
	m.focusPositions = make(map[string]focusablePos)

	var blocks []string
	y := 0
	for _, s := range m.sections {
		res := s.Render(width, focusID, "")
		h := measureHeight(res.Content)
		if res.Content == "" && h == 0 {
			continue
		}
		for _, f := range res.Focusables {
			m.focusIDs = append(m.focusIDs, f.ID)
			m.focusPositions[f.ID] = focusablePos{y: y + f.OffsetY, height: f.Height}
		}
		blocks = append(blocks, res.Content)
		y += h
	}
	if m.focusIdx >= len(m.focusIDs) {
		m.focusIdx = 0
	}
	return strings.Join(blocks, "\n"), y
}

// buildLayout renders the modal box. Bodies taller than the screen scroll
// inside a viewport with a one-column scrollbar.
func (m *Modal) buildLayout(screenW, screenH int) string {
	f := m.measure(screenW, screenH)

	body, height := m.renderBody(f.inner)
	scrolling := height > f.bodyMax
	if scrolling && f.inner > 1 {
		// Make room for the scrollbar; wrapping may change the height.
		body, height = m.renderBody(f.inner - 1)
		scrolling = height > f.bodyMax
	}

	viewH := max(1, min(height, f.bodyMax))
	m.lastViewportH = viewH
	m.scrollOffset = clamp(m.scrollOffset, 0, max(0, height-viewH))

	bodyW := f.inner
	if scrolling {
		bodyW--
	}
	vp := viewport.New(max(1, bodyW), viewH)
	vp.SetContent(body)
	vp.SetYOffset(m.scrollOffset)

	view := vp.View()
	if scrolling {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, scrollbar(height, m.scrollOffset, viewH))
	}

	parts := make([]string, 0, 4)
	if m.title != "" {
		parts = append(parts, m.titleStyle().Render(m.title))
	}
	parts = append(parts, view)
	if m.showHints {
		parts = append(parts, styles.Muted.Render(hintText))
	}
	if m.customFooter != "" {
		parts = append(parts, m.customFooter)
	}
	return m.boxStyle(f.outer).Render(strings.Join(parts, "\n"))
}

// scrollbar draws a track with a thumb sized to the visible fraction.
func scrollbar(total, offset, viewH int) string {
	thumb := clamp(viewH*viewH/max(1, total), 1, viewH)
	pos := clamp(offset*(viewH-thumb)/max(1, total-viewH), 0, viewH-thumb)

	track := lipgloss.NewStyle().Foreground(styles.TextSubtle).Render("│")
	bar := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("┃")

	rows := make([]string, viewH)
	for i := range rows {
		rows[i] = track
		if i >= pos && i < pos+thumb {
			rows[i] = bar
		}
	}
	return strings.Join(rows, "\n")
}

// accent returns the variant color, or nil for the default variant.
func (m *Modal) accent() lipgloss.TerminalColor {
	switch m.variant {
	case VariantDanger:
		return styles.Error
	case VariantWarning:
		return styles.Warning
	case VariantInfo:
		return styles.Info
	}
	return nil
}

func (m *Modal) titleStyle() lipgloss.Style {
	if c := m.accent(); c != nil {
		return styles.ModalTitle.Foreground(c)
	}
	return styles.ModalTitle
}

func (m *Modal) boxStyle(width int) lipgloss.Style {
	border := lipgloss.TerminalColor(styles.Primary)
	if c := m.accent(); c != nil {
		border = c
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(styles.BgSecondary).
		Padding(1, 2).
		Width(width)
}

// clamp constrains v to [lo, hi].
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
