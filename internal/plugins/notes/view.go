package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notedeck/internal/board"
	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/styles"
	"github.com/marcus/notedeck/internal/ui"
)

const (
	cardMinWidth  = 26
	cardGap       = 1
	contentLines  = 4
	cardHeight    = contentLines + 4 // title + updated + top/bottom border
	headerLines   = 2
	cardChromeW   = 4 // border + horizontal padding
	searchMaxW    = 40
	updatedLabel  = "Last Updated: "
	emptyNoNotes  = "No notes yet. Press n to write one."
	emptyNoMatchF = "No notes match %q. Press esc to clear the filter."
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height
	p.columns = max(1, (width+cardGap)/(cardMinWidth+cardGap))
	p.composeWidth = min(ui.ModalWidthLarge, width-4)
	p.ensureCursorVisible()

	var b strings.Builder
	b.WriteString(p.renderHeader(width))
	b.WriteString("\n\n")
	b.WriteString(p.renderGrid(width, height-headerLines))
	content := b.String()

	switch {
	case p.compose != nil:
		return ui.OverlayModal(content, p.compose.Render(width, height), width, height)
	case p.deleteModal != nil:
		return ui.OverlayModal(content, p.deleteModal.Render(width, height), width, height)
	case p.preview != nil:
		return ui.OverlayModal(content, p.previewModal(width, height).Render(width, height), width, height)
	}
	return content
}

// renderHeader draws the title, note count and search bar.
func (p *Plugin) renderHeader(width int) string {
	count := fmt.Sprintf("%d notes", p.view.Total)
	if p.view.Query != "" {
		count = fmt.Sprintf("%d of %d notes", len(p.view.Cards), p.view.Total)
	}
	left := styles.Title.Render("Notes") + "  " + styles.Muted.Render(count)

	var right string
	switch {
	case p.searchMode:
		p.searchInput.Width = min(searchMaxW, max(10, width/3))
		right = p.searchInput.View()
	case p.view.Query != "":
		right = styles.Muted.Render("/ ") + styles.Body.Render(ui.Truncate(p.view.Query, searchMaxW))
	case p.drag != nil:
		right = styles.Muted.Render("moving note · space drop · esc cancel")
	}

	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// visibleRows is how many card rows fit in the grid area.
func (p *Plugin) visibleRows() int {
	return max(1, (p.height-headerLines)/cardHeight)
}

// displayOrder returns view positions in drawing order, applying the
// in-progress drag so the grabbed card shows where it would land.
func (p *Plugin) displayOrder() []int {
	order := make([]int, len(p.view.Cards))
	for i := range order {
		order[i] = i
	}
	if p.drag == nil {
		return order
	}
	moved, err := note.Move(order, p.drag.from, p.drag.to)
	if err != nil {
		return order
	}
	return moved
}

// renderGrid draws the visible rows of note cards.
func (p *Plugin) renderGrid(width, height int) string {
	if len(p.view.Cards) == 0 {
		text := emptyNoNotes
		if p.view.Query != "" {
			text = fmt.Sprintf(emptyNoMatchF, p.view.Query)
		}
		return lipgloss.Place(width, max(1, height), lipgloss.Center, lipgloss.Center, styles.Muted.Render(text))
	}

	cols := p.columns
	cardW := (width - cardGap*(cols-1)) / cols
	order := p.displayOrder()

	var rows []string
	first := p.scroll * cols
	last := min(len(order), first+p.visibleRows()*cols)
	for start := first; start < last; start += cols {
		end := min(start+cols, last)
		cells := make([]string, 0, 2*(end-start))
		for pos := start; pos < end; pos++ {
			if pos > start {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			card := p.view.Cards[order[pos]]
			grabbed := p.drag != nil && pos == p.drag.to
			selected := p.drag == nil && pos == p.cursor
			cells = append(cells, renderCard(card, cardW, selected, grabbed))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	out := strings.Join(rows, "\n")
	if p.scroll > 0 || last < len(order) {
		more := fmt.Sprintf("%d-%d of %d", first+1, last, len(order))
		out += "\n" + styles.Subtle.Render(more)
	}
	return out
}

// renderCard draws one note card of the given outer width.
func renderCard(card board.Card, width int, selected, grabbed bool) string {
	bg := lipgloss.Color(string(card.Color))
	inner := max(1, width-cardChromeW)
	ink := lipgloss.NewStyle().Background(bg).Foreground(styles.InkFor(string(card.Color)))

	lines := ui.WrapLines(card.Content, inner, contentLines)
	for len(lines) < contentLines {
		lines = append(lines, "")
	}

	var b strings.Builder
	b.WriteString(ink.Bold(true).Render(ui.Truncate(card.Title, inner)))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(ink.Render(line))
	}
	b.WriteString("\n")
	b.WriteString(ink.Faint(true).Render(ui.Truncate(updatedLine(card.Updated), inner)))

	return styles.NoteCard(string(card.Color), width-2, selected, grabbed).Render(b.String())
}

func updatedLine(stamp string) string {
	if stamp == "" {
		return ""
	}
	return updatedLabel + stamp
}
