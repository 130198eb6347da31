// Package modal renders declarative, keyboard-driven dialogs composed of
// sections (text, inputs, lists, buttons).
package modal

import tea "github.com/charmbracelet/bubbletea"

// Modal represents a declarative modal dialog.
type Modal struct {
	title         string
	variant       Variant
	width         int
	sections      []Section
	showHints     bool
	primaryAction string
	customFooter  string

	focusIdx     int      // index into focusIDs
	focusIDs     []string // rebuilt on every Render
	scrollOffset int      // content scroll position in lines

	focusPositions map[string]focusablePos
	lastViewportH  int
}

// focusablePos records where a focusable element sits in the full content.
type focusablePos struct {
	y      int
	height int
}

// New creates a new Modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		variant:   VariantDefault,
		width:     DefaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection adds a section to the modal. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Render lays the modal out for the given screen and returns the styled box.
func (m *Modal) Render(screenW, screenH int) string {
	return m.buildLayout(screenW, screenH)
}

// HandleKey processes keyboard input.
// Returns:
//   - action: the action ID if triggered ("cancel" for Esc, button/input ID for Enter, etc.)
//   - cmd: any tea.Cmd from bubbles models (cursor blink, etc.)
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		m.cycleFocus(1)
		return "", nil

	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return m.primaryAction, nil
		}
		action, cmd = m.routeToFocusedSection(msg)
		if action != "" || m.focusConsumesEnter(focusID) {
			return action, cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		return m.routeToFocusedSection(msg)
	}
}

// Update forwards non-key messages (cursor blink and the like) to the
// focused section.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	focusID := m.currentFocusID()
	if focusID == "" {
		return nil
	}
	var cmds []tea.Cmd
	for _, s := range m.sections {
		if _, cmd := s.Update(msg, focusID); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ScrollBy adjusts the scroll offset by delta lines.
// Clamping to valid range happens in buildLayout.
func (m *Modal) ScrollBy(delta int) { m.scrollOffset += delta }

// SetFocus sets focus to a specific element by ID. The ID must have been
// seen by a previous Render.
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs {
		if fid == id {
			m.focusIdx = i
			return
		}
	}
}

// FocusedID returns the currently focused element ID.
func (m *Modal) FocusedID() string {
	return m.currentFocusID()
}

// Reset resets focus and scroll.
func (m *Modal) Reset() {
	m.focusIdx = 0
	m.scrollOffset = 0
}

// currentFocusID returns the ID of the currently focused element.
func (m *Modal) currentFocusID() string {
	if len(m.focusIDs) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return m.focusIDs[0]
	}
	return m.focusIDs[m.focusIdx]
}

// cycleFocus moves focus by delta (1 for next, -1 for previous).
func (m *Modal) cycleFocus(delta int) {
	if len(m.focusIDs) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(m.focusIDs)) % len(m.focusIDs)
	m.scrollToFocused()
}

// scrollToFocused adjusts scrollOffset so the focused element is visible.
func (m *Modal) scrollToFocused() {
	id := m.currentFocusID()
	if id == "" || m.focusPositions == nil || m.lastViewportH <= 0 {
		return
	}
	pos, ok := m.focusPositions[id]
	if !ok {
		return
	}
	if pos.y < m.scrollOffset {
		m.scrollOffset = pos.y
	}
	if pos.y+pos.height > m.scrollOffset+m.lastViewportH {
		m.scrollOffset = pos.y + pos.height - m.lastViewportH
	}
}

// routeToFocusedSection routes a key message to the focused section.
func (m *Modal) routeToFocusedSection(msg tea.KeyMsg) (string, tea.Cmd) {
	focusID := m.currentFocusID()
	if focusID == "" {
		return "", nil
	}
	for _, section := range m.sections {
		action, cmd := section.Update(msg, focusID)
		if action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}

func (m *Modal) focusConsumesEnter(focusID string) bool {
	for _, s := range m.sections {
		if ec, ok := s.(enterConsumer); ok && ec.consumesEnter(focusID) {
			return true
		}
	}
	return false
}
