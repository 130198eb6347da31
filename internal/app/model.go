package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/config"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/modal"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/state"
	"github.com/marcus/notedeck/internal/ui"
)

// ModalKind identifies an app-level modal. Lower values win.
type ModalKind int

const (
	ModalNone        ModalKind = iota // No modal open
	ModalHelp                         // Help overlay
	ModalQuitConfirm                  // Quit confirmation dialog
)

// activeModal returns the highest-priority open modal.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showHelp:
		return ModalHelp
	case m.quitModal != nil:
		return ModalQuitConfirm
	default:
		return ModalNone
	}
}

// Model is the root Bubble Tea model for notedeck.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	// Plugin management
	registry     *plugin.Registry
	activePlugin int

	// Keymap
	keymap        *keymap.Registry
	activeContext string

	// UI state
	width, height int
	ready         bool
	showHelp      bool
	showFooter    bool
	showClock     bool
	quitModal     *modal.Modal
	clock         time.Time
	now           func() time.Time

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
}

// New creates a new application model. initialPluginID optionally selects
// the plugin focused on startup; an unknown ID falls back to the first.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config, initialPluginID string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := slog.Default()
	if ctx := reg.Context(); ctx != nil && ctx.Logger != nil {
		logger = ctx.Logger
	}

	activeIdx := 0
	for i, p := range reg.Plugins() {
		if p.ID() == initialPluginID {
			activeIdx = i
			break
		}
	}

	m := Model{
		cfg:           cfg,
		logger:        logger,
		registry:      reg,
		keymap:        km,
		activePlugin:  activeIdx,
		activeContext: keymap.ContextGlobal,
		showFooter:    cfg.UI.ShowFooter,
		showClock:     cfg.UI.ShowClock,
		now:           time.Now,
	}
	m.clock = m.now()
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
		m.activeContext = p.FocusContext()
	}
	return m
}

// Init starts the clock and every registered plugin.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	for _, cmd := range m.registry.Start() {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the currently active plugin.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	if m.activePlugin >= len(plugins) {
		return plugins[0]
	}
	return plugins[m.activePlugin]
}

// SetActivePlugin focuses the plugin at idx, remembers it for the next
// run, and returns a command that notifies the plugin.
func (m *Model) SetActivePlugin(idx int) tea.Cmd {
	plugins := m.registry.Plugins()
	if idx < 0 || idx >= len(plugins) {
		return nil
	}
	if current := m.ActivePlugin(); current != nil {
		current.SetFocused(false)
	}
	m.activePlugin = idx
	next := plugins[idx]
	next.SetFocused(true)
	m.activeContext = next.FocusContext()
	if err := state.SetActivePlugin(next.ID()); err != nil {
		m.logger.Debug("save active plugin failed", "error", err)
	}
	return PluginFocused()
}

// NextPlugin switches to the next plugin.
func (m *Model) NextPlugin() tea.Cmd {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	return m.SetActivePlugin((m.activePlugin + 1) % len(plugins))
}

// PrevPlugin switches to the previous plugin.
func (m *Model) PrevPlugin() tea.Cmd {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	idx := m.activePlugin - 1
	if idx < 0 {
		idx = len(plugins) - 1
	}
	return m.SetActivePlugin(idx)
}

// FocusPluginByID switches to a plugin by its ID.
func (m *Model) FocusPluginByID(id string) tea.Cmd {
	for i, p := range m.registry.Plugins() {
		if p.ID() == id {
			return m.SetActivePlugin(i)
		}
	}
	return nil
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(text string, duration time.Duration, isError bool) {
	if duration <= 0 {
		duration = 2 * time.Second
	}
	m.statusMsg = text
	m.statusIsError = isError
	m.statusExpiry = m.now().Add(duration)
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// openQuitConfirm shows the quit dialog.
func (m *Model) openQuitConfirm() {
	d := ui.NewConfirmDialog("Quit notedeck?", "Notes are saved as you go.")
	d.ConfirmLabel = " Quit "
	d.Width = ui.ModalWidthSmall
	m.quitModal = d.ToModal()
	m.activeContext = "quit-confirm"
}

// quit stops the plugins and ends the program.
func (m *Model) quit() tea.Cmd {
	m.registry.Stop()
	return tea.Quit
}
