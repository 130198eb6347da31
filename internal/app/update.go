package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/msg"
	"github.com/marcus/notedeck/internal/plugin"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case TickMsg:
		m.clock = m.now()
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case FocusPluginByIDMsg:
		return m, m.FocusPluginByID(message.PluginID)

	case plugin.PluginFocusedMsg:
		if p := m.ActivePlugin(); p != nil {
			_, cmd := p.Update(message)
			return m, cmd
		}
		return m, nil
	}

	// Other messages go to every plugin so background results reach their
	// owner even when another plugin is focused.
	plugins := m.registry.Plugins()
	for i, p := range plugins {
		next, cmd := p.Update(message)
		plugins[i] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.activeModal() == ModalNone {
		m.updateContext()
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := k.String()

	switch m.activeModal() {
	case ModalHelp:
		if key == "esc" || m.keymap.LookupLocal(key, keymap.ContextGlobal) == "toggle-help" {
			m.showHelp = false
			m.updateContext()
		}
		if key == "ctrl+c" {
			return m, m.quit()
		}
		return m, nil

	case ModalQuitConfirm:
		return m.handleQuitConfirmKey(k)
	}

	// ctrl+c always quits, even while typing.
	if key == "ctrl+c" {
		return m, m.quit()
	}

	p := m.ActivePlugin()
	if p == nil {
		return m.handleGlobalKey(key)
	}

	// Text input and sub-views own the keyboard.
	if tc, ok := p.(plugin.TextInputConsumer); ok && tc.ConsumesTextInput() {
		return m.forwardToPlugin(k)
	}
	if !isRootContext(m.activeContext) {
		return m.forwardToPlugin(k)
	}

	// Plugin bindings shadow global ones.
	if m.keymap.LookupLocal(key, m.activeContext) != "" {
		return m.forwardToPlugin(k)
	}
	if m.keymap.LookupLocal(key, keymap.ContextGlobal) != "" {
		return m.handleGlobalKey(key)
	}
	return m.forwardToPlugin(k)
}

// handleGlobalKey runs a global keymap command.
func (m Model) handleGlobalKey(key string) (tea.Model, tea.Cmd) {
	switch m.keymap.LookupLocal(key, keymap.ContextGlobal) {
	case "quit":
		m.openQuitConfirm()
		return m, nil
	case "next-plugin":
		return m, m.NextPlugin()
	case "prev-plugin":
		return m, m.PrevPlugin()
	case "focus-plugin-1":
		return m, m.SetActivePlugin(0)
	case "focus-plugin-2":
		return m, m.SetActivePlugin(1)
	case "toggle-help":
		m.showHelp = true
		m.activeContext = "help"
		return m, nil
	case "toggle-footer":
		m.showFooter = !m.showFooter
		return m, nil
	}
	return m, nil
}

// handleQuitConfirmKey resolves the quit dialog.
func (m Model) handleQuitConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := ""
	switch k.String() {
	case "y", "q", "ctrl+c":
		action = "confirm"
	case "n":
		action = "cancel"
	case "enter":
		if action, _ = m.quitModal.HandleKey(k); action == "" {
			action = "confirm"
		}
	default:
		action, _ = m.quitModal.HandleKey(k)
	}

	switch action {
	case "confirm":
		m.quitModal = nil
		return m, m.quit()
	case "cancel":
		m.quitModal = nil
		m.updateContext()
	}
	return m, nil
}

// forwardToPlugin sends a key to the active plugin.
func (m Model) forwardToPlugin(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	next, cmd := p.Update(k)
	plugins := m.registry.Plugins()
	if m.activePlugin < len(plugins) {
		plugins[m.activePlugin] = next
	}
	m.updateContext()
	return m, cmd
}

// updateContext sets activeContext from the focused plugin.
func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
	} else {
		m.activeContext = keymap.ContextGlobal
	}
}

// isRootContext reports whether ctx is a plugin top-level view where global
// keys such as q and the plugin switchers apply.
func isRootContext(ctx string) bool {
	switch ctx {
	case keymap.ContextGlobal, "", keymap.ContextNotes, keymap.ContextCalendar:
		return true
	default:
		return false
	}
}
