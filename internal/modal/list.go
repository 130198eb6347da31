package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notedeck/internal/styles"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier for this item
	Label string // Display text, may contain styling
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

// listSection renders a scrollable list that takes focus as a single unit;
// j/k move the selection while it is focused.
type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
}

// List creates a list section with selectable items. selectedIdx points at
// the caller's selection so it can be read back after the modal closes.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

func (s *listSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: styles.Muted.Render("(no items)")}
	}

	visibleCount := min(s.maxVisible, len(s.items))
	selected := 0
	if s.selectedIdx != nil {
		selected = *s.selectedIdx
	}

	if selected < s.scrollOffset {
		s.scrollOffset = selected
	} else if selected >= s.scrollOffset+visibleCount {
		s.scrollOffset = selected - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.items)-visibleCount))

	focused := focusID == s.id
	lines := make([]string, 0, visibleCount+2)
	if s.scrollOffset > 0 {
		lines = append(lines, styles.Muted.Render("↑ more above"))
	}
	offsetY := len(lines)
	for i := 0; i < visibleCount; i++ {
		idx := s.scrollOffset + i
		item := s.items[idx]
		cursor := "  "
		style := styles.ListItemNormal
		if idx == selected {
			style = styles.ListItemSelected
			cursor = styles.ListCursor.Render("> ")
			if focused {
				style = styles.ListItemFocused
				cursor = styles.ListCursor.Render("▸ ")
			}
		}
		lines = append(lines, cursor+style.Render(item.Label))
	}
	if s.scrollOffset+visibleCount < len(s.items) {
		lines = append(lines, styles.Muted.Render("↓ more below"))
	}

	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: visibleCount}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}
