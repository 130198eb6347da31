package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/modal"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/styles"
	"github.com/marcus/notedeck/internal/ui"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	minWidth     = 40
	minHeight    = 12
	appTitle     = " notedeck"
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		text := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusError.Render(text))
	}

	contentHeight := m.height - headerHeight
	if m.showFooter {
		contentHeight -= footerHeight
	}
	contentHeight = max(0, contentHeight)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent(m.width, contentHeight))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	view := b.String()
	switch m.activeModal() {
	case ModalHelp:
		view = ui.OverlayModal(view, m.helpModal().Render(m.width, m.height), m.width, m.height)
	case ModalQuitConfirm:
		view = ui.OverlayModal(view, m.quitModal.Render(m.width, m.height), m.width, m.height)
	}
	return ui.OverlayToast(view, m.renderToast(), m.width)
}

// renderHeader renders the top bar with title, tabs, and clock.
func (m Model) renderHeader() string {
	title := styles.BarTitle.Render(appTitle) + " "

	plugins := m.registry.Plugins()
	tabs := make([]string, 0, len(plugins))
	for i, p := range plugins {
		tabs = append(tabs, styles.RenderTab(p.Name(), i == m.activePlugin))
	}
	tabBar := strings.Join(tabs, " ")

	var clock string
	if m.showClock {
		clock = styles.BarText.Render(m.clock.Format("15:04") + " ")
	}

	spacing := max(0, m.width-lipgloss.Width(title)-lipgloss.Width(tabBar)-lipgloss.Width(clock))
	header := title + strings.Repeat(" ", spacing/2) + tabBar + strings.Repeat(" ", spacing-spacing/2) + clock
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(header)
}

// renderContent renders the main content area.
func (m Model) renderContent(width, height int) string {
	p := m.ActivePlugin()
	if p == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render("No plugins loaded"))
	}
	if height == 0 {
		return ""
	}
	content := p.View(width, height)
	// MaxHeight also truncates tall content so the header stays on screen.
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// renderToast renders the current status message, if any.
func (m Model) renderToast() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsError {
		return styles.ToastError.Render(m.statusMsg)
	}
	return styles.ToastSuccess.Render(m.statusMsg)
}

// renderFooter renders the bottom bar with key hints.
func (m Model) renderFooter() string {
	hints := renderHintLineTruncated(m.footerHints(), m.width-1)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(hints)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	var hints []footerHint
	if p := m.ActivePlugin(); p != nil {
		hints = m.pluginFooterHints(p, m.activeContext)
	}
	if isRootContext(m.activeContext) {
		hints = append(hints, m.globalFooterHints()...)
	}
	return hints
}

func (m Model) globalFooterHints() []footerHint {
	globals := []struct {
		id    string
		label string
	}{
		{id: "next-plugin", label: "switch"},
		{id: "toggle-help", label: "help"},
		{id: "quit", label: "quit"},
	}

	var hints []footerHint
	for _, g := range globals {
		keys := m.keymap.KeysFor(g.id, keymap.ContextGlobal)
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: keymap.DisplayKey(keys[0]), label: g.label})
	}
	return hints
}

func (m Model) pluginFooterHints(p plugin.Plugin, context string) []footerHint {
	if context == "" || context == keymap.ContextGlobal {
		return nil
	}

	type cmdWithKeys struct {
		cmd  plugin.Command
		keys []string
	}
	var cmds []cmdWithKeys
	for _, cmd := range p.Commands() {
		if cmd.Context != context {
			continue
		}
		keys := m.keymap.KeysFor(cmd.ID, context)
		if len(keys) == 0 {
			continue
		}
		cmds = append(cmds, cmdWithKeys{cmd, keys})
	}

	// Lower priority first; unset priorities go last.
	prio := func(c plugin.Command) int {
		if c.Priority == 0 {
			return 99
		}
		return c.Priority
	}
	sort.SliceStable(cmds, func(i, j int) bool {
		return prio(cmds[i].cmd) < prio(cmds[j].cmd)
	})

	hints := make([]footerHint, 0, len(cmds))
	for _, c := range cmds {
		hints = append(hints, footerHint{keys: formatBindingKeys(c.keys), label: c.cmd.Name})
	}
	return hints
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for _, hint := range hints {
		if hint.keys == "" || hint.label == "" {
			continue
		}
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// helpModal builds the keyboard shortcut overlay for the focused plugin.
func (m Model) helpModal() *modal.Modal {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Global"))
	b.WriteString("\n")
	m.renderBindingSection(&b, keymap.ContextGlobal)

	if p := m.ActivePlugin(); p != nil {
		ctx := p.FocusContext()
		if ctx != keymap.ContextGlobal && len(m.keymap.BindingsForContext(ctx)) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.Title.Render(p.Name()))
			b.WriteString("\n")
			m.renderBindingSection(&b, ctx)
		}
	}

	return modal.New("Keyboard Shortcuts",
		modal.WithWidth(ui.ModalWidthMedium),
		modal.WithHints(false),
		modal.WithFooter(styles.Subtle.Render("Press ? or esc to close")),
	).AddSection(modal.Text(strings.TrimRight(b.String(), "\n")))
}

// renderBindingSection renders bindings for a context, one line per command.
func (m Model) renderBindingSection(b *strings.Builder, context string) {
	bindings := m.keymap.BindingsForContext(context)
	seen := make(map[string]bool)
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true

		var keys []string
		for _, b2 := range bindings {
			if b2.Command == binding.Command {
				keys = append(keys, b2.Key)
			}
		}
		padded := fmt.Sprintf("%-11s", formatBindingKeys(keys))
		fmt.Fprintf(b, "  %s %s\n", styles.Muted.Render(padded), formatCommandName(binding.Command))
	}
}

// formatBindingKeys formats up to two keys for display.
func formatBindingKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	shown := make([]string, len(keys))
	for i, k := range keys {
		shown[i] = keymap.DisplayKey(k)
	}
	return strings.Join(shown, ", ")
}

// formatCommandName converts a command ID to a display name.
func formatCommandName(cmd string) string {
	return strings.ReplaceAll(cmd, "-", " ")
}
