// Package notes is the sticky-notes board plugin: a card grid over the
// board controller with search, compose and delete dialogs, keyboard
// drag-reorder and a markdown preview.
package notes

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/board"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/modal"
	"github.com/marcus/notedeck/internal/msg"
	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/slot"
)

const (
	pluginID   = "notes"
	pluginName = "notes"
	pluginIcon = "N"

	toastDuration = 2 * time.Second
	errorDuration = 5 * time.Second
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// SlotChangedMsg reports that the note slot was modified by another process.
type SlotChangedMsg struct{}

// dragState tracks a grabbed card. from and to are view positions.
type dragState struct {
	from int
	to   int
}

// Plugin implements the notes board plugin.
type Plugin struct {
	ctx     *plugin.Context
	focused bool
	board   *board.Controller
	keys    *keymap.Registry

	// Last view pushed by the controller.
	view board.View

	// View dimensions
	width  int
	height int

	// Grid state
	cursor  int
	scroll  int // first visible card row
	columns int

	// Search state
	searchMode  bool
	searchInput textinput.Model

	// Drag state (nil when no card is grabbed)
	drag *dragState

	// Compose modal state
	compose      *modal.Modal
	titleInput   textinput.Model
	contentArea  textarea.Model
	colorIdx     int
	composeErr   string
	composeWidth int

	// Delete modal state
	deleteModal *modal.Modal

	// Preview state (nil when closed)
	preview *previewState

	// Warnings raised by the controller during the current action.
	warnings []error
}

// New creates a new notes plugin.
func New() *Plugin {
	return &Plugin{columns: 1}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init wires the plugin to the note slot in ctx.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if ctx == nil || ctx.Slot == nil {
		return errors.New("notes: no slot configured")
	}
	p.ctx = ctx
	p.keys = ctx.Keymap
	if p.keys == nil {
		p.keys = keymap.NewRegistry()
		keymap.RegisterDefaults(p.keys)
	}

	store := note.NewStore(ctx.Slot, note.WithLogger(ctx.Logger))
	p.board = board.New(store, p,
		board.WithLogger(ctx.Logger),
		board.WithWarn(func(err error) { p.warnings = append(p.warnings, err) }),
	)

	si := textinput.New()
	si.Placeholder = "search notes"
	si.Prompt = "/ "
	si.CharLimit = 200
	p.searchInput = si

	p.cursor = 0
	p.scroll = 0
	p.drag = nil
	p.searchMode = false
	return nil
}

// Start loads the notes and begins listening for external changes.
func (p *Plugin) Start() tea.Cmd {
	if p.board == nil {
		return nil
	}
	var cmds []tea.Cmd
	if err := p.board.Start(); err != nil {
		cmds = append(cmds, msg.ShowError("Could not load notes: "+err.Error(), errorDuration))
	}
	cmds = append(cmds, p.waitForChange())
	return tea.Batch(cmds...)
}

// Stop cleans up plugin resources. The slot is owned by the caller.
func (p *Plugin) Stop() {
	p.drag = nil
	p.compose = nil
	p.deleteModal = nil
	p.preview = nil
}

// waitForChange blocks on the slot watcher and reports one change.
func (p *Plugin) waitForChange() tea.Cmd {
	if p.ctx == nil || p.ctx.Watch == nil {
		return nil
	}
	ch := p.ctx.Watch
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return SlotChangedMsg{}
	}
}

// reload re-reads the slot and reports the outcome as a toast.
func (p *Plugin) reload() tea.Cmd {
	wasOpen := p.view.Mode != board.ModeIdle
	p.drag = nil
	err := p.board.Reload()
	if p.preview != nil && p.board.Store().IndexOf(p.preview.id) < 0 {
		p.preview = nil
	}
	switch {
	case err != nil:
		return msg.ShowError("Reload failed: "+err.Error(), errorDuration)
	case wasOpen && p.view.Mode == board.ModeIdle:
		return msg.ShowToast("Note changed elsewhere; dialog closed", toastDuration)
	default:
		return msg.ShowToast("Notes reloaded", toastDuration)
	}
}

// Render implements board.Renderer. The controller calls it synchronously
// after every state change.
func (p *Plugin) Render(v board.View) {
	p.view = v
	if v.Mode != board.ModeComposing {
		p.compose = nil
		p.composeErr = ""
	}
	if v.Mode != board.ModeConfirmingDelete {
		p.deleteModal = nil
	}
	p.clampCursor()
}

// Board exposes the controller, mainly for tests.
func (p *Plugin) Board() *board.Controller { return p.board }

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case tea.KeyMsg:
		return p.handleKey(m)

	case SlotChangedMsg:
		return p, tea.Batch(p.reload(), p.waitForChange())

	case plugin.PluginFocusedMsg:
		return p, nil
	}

	// Cursor blink and similar ticks go to whichever input is live.
	switch {
	case p.compose != nil:
		return p, p.compose.Update(m)
	case p.searchMode:
		var cmd tea.Cmd
		p.searchInput, cmd = p.searchInput.Update(m)
		return p, cmd
	}
	return p, nil
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Commands returns the available commands for the current context.
func (p *Plugin) Commands() []plugin.Command {
	switch ctx := p.FocusContext(); ctx {
	case keymap.ContextNotesCompose:
		return []plugin.Command{
			{ID: "save-note", Name: "Save", Description: "Save note", Category: plugin.CategoryEdit, Context: ctx, Priority: 1},
			{ID: "next-field", Name: "Next", Description: "Next field", Category: plugin.CategoryNavigation, Context: ctx, Priority: 2},
			{ID: "cancel", Name: "Cancel", Description: "Discard changes", Category: plugin.CategoryActions, Context: ctx, Priority: 3},
		}
	case keymap.ContextNotesDelete:
		return []plugin.Command{
			{ID: "confirm", Name: "Delete", Description: "Confirm delete", Category: plugin.CategoryActions, Context: ctx, Priority: 1},
			{ID: "cancel", Name: "Cancel", Description: "Keep note", Category: plugin.CategoryActions, Context: ctx, Priority: 2},
		}
	case keymap.ContextNotesPreview:
		return []plugin.Command{
			{ID: "scroll-down", Name: "Scroll", Description: "Scroll preview", Category: plugin.CategoryNavigation, Context: ctx, Priority: 2},
			{ID: "yank", Name: "Yank", Description: "Copy note content", Category: plugin.CategoryActions, Context: ctx, Priority: 3},
			{ID: "close-preview", Name: "Close", Description: "Close preview", Category: plugin.CategoryView, Context: ctx, Priority: 1},
		}
	case keymap.ContextNotesSearch:
		return []plugin.Command{
			{ID: "apply-search", Name: "Apply", Description: "Keep filter and return to board", Category: plugin.CategorySearch, Context: ctx, Priority: 1},
			{ID: "clear-search", Name: "Clear", Description: "Clear filter", Category: plugin.CategorySearch, Context: ctx, Priority: 2},
		}
	case keymap.ContextNotesDrag:
		return []plugin.Command{
			{ID: "move-right", Name: "Move", Description: "Move grabbed note", Category: plugin.CategoryEdit, Context: ctx, Priority: 1},
			{ID: "drop", Name: "Drop", Description: "Drop note here", Category: plugin.CategoryEdit, Context: ctx, Priority: 2},
			{ID: "cancel-drag", Name: "Cancel", Description: "Put note back", Category: plugin.CategoryEdit, Context: ctx, Priority: 3},
		}
	}
	ctx := keymap.ContextNotes
	cmds := []plugin.Command{
		{ID: "new-note", Name: "New", Description: "Create note", Category: plugin.CategoryActions, Context: ctx, Priority: 1},
		{ID: "search", Name: "Search", Description: "Filter notes", Category: plugin.CategorySearch, Context: ctx, Priority: 2},
	}
	if len(p.view.Cards) > 0 {
		cmds = append(cmds,
			plugin.Command{ID: "edit-note", Name: "Edit", Description: "Edit selected note", Category: plugin.CategoryActions, Context: ctx, Priority: 3},
			plugin.Command{ID: "delete-note", Name: "Delete", Description: "Delete selected note", Category: plugin.CategoryActions, Context: ctx, Priority: 4},
			plugin.Command{ID: "grab", Name: "Move", Description: "Grab note to reorder", Category: plugin.CategoryEdit, Context: ctx, Priority: 5},
			plugin.Command{ID: "preview", Name: "View", Description: "Preview note as markdown", Category: plugin.CategoryView, Context: ctx, Priority: 6},
			plugin.Command{ID: "yank", Name: "Yank", Description: "Copy note content", Category: plugin.CategoryActions, Context: ctx, Priority: 7},
		)
	}
	if p.view.Query != "" {
		cmds = append(cmds, plugin.Command{ID: "clear-search", Name: "Clear", Description: "Clear filter", Category: plugin.CategorySearch, Context: ctx, Priority: 0})
	}
	return cmds
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string {
	switch {
	case p.compose != nil:
		return keymap.ContextNotesCompose
	case p.deleteModal != nil:
		return keymap.ContextNotesDelete
	case p.preview != nil:
		return keymap.ContextNotesPreview
	case p.searchMode:
		return keymap.ContextNotesSearch
	case p.drag != nil:
		return keymap.ContextNotesDrag
	default:
		return keymap.ContextNotes
	}
}

// ConsumesTextInput reports whether printable keys should reach the
// plugin directly.
func (p *Plugin) ConsumesTextInput() bool {
	return p.searchMode || p.compose != nil
}

// selectedCard returns the card under the cursor.
func (p *Plugin) selectedCard() (board.Card, bool) {
	if p.cursor < 0 || p.cursor >= len(p.view.Cards) {
		return board.Card{}, false
	}
	return p.view.Cards[p.cursor], true
}

func (p *Plugin) clampCursor() {
	n := len(p.view.Cards)
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// flushWarnings turns persistence warnings collected during an action into
// one error toast.
func (p *Plugin) flushWarnings() tea.Cmd {
	if len(p.warnings) == 0 {
		return nil
	}
	err := p.warnings[len(p.warnings)-1]
	p.warnings = nil
	text := "Could not save notes"
	if errors.Is(err, slot.ErrQuotaExceeded) {
		text = "Could not save notes: storage quota exceeded"
	}
	return msg.ShowError(text+"; changes are kept until you quit", errorDuration)
}

// actionError reports a failed controller action. Persistence failures are
// already surfaced through flushWarnings.
func (p *Plugin) actionError(err error) tea.Cmd {
	if warn := p.flushWarnings(); warn != nil {
		return warn
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, note.ErrNoteNotFound):
		return msg.ShowError("That note no longer exists", toastDuration)
	case errors.Is(err, board.ErrModalActive):
		return nil
	default:
		return msg.ShowError(fmt.Sprintf("Error: %v", err), errorDuration)
	}
}

// yank copies content to the clipboard.
func (p *Plugin) yank(content string) tea.Cmd {
	if err := writeClipboard(content); err != nil {
		return msg.ShowError("Copy failed: "+err.Error(), toastDuration)
	}
	return msg.ShowToast("Copied note content", toastDuration)
}
