package notes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/board"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/plugin"
)

// handleKey routes a key to the handler for the current focus context.
func (p *Plugin) handleKey(k tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch p.FocusContext() {
	case keymap.ContextNotesCompose:
		return p, p.handleComposeKey(k)
	case keymap.ContextNotesDelete:
		return p, p.handleDeleteKey(k)
	case keymap.ContextNotesPreview:
		return p, p.handlePreviewKey(k)
	case keymap.ContextNotesSearch:
		return p, p.handleSearchKey(k)
	case keymap.ContextNotesDrag:
		return p, p.handleDragKey(k)
	}
	return p, p.handleBoardKey(k)
}

func (p *Plugin) command(k tea.KeyMsg) string {
	return p.keys.LookupLocal(k.String(), p.FocusContext())
}

// handleBoardKey handles keys on the idle board.
func (p *Plugin) handleBoardKey(k tea.KeyMsg) tea.Cmd {
	card, hasCard := p.selectedCard()

	switch p.command(k) {
	case "cursor-down":
		p.moveCursor(p.columns)
	case "cursor-up":
		p.moveCursor(-p.columns)
	case "cursor-right":
		p.moveCursor(1)
	case "cursor-left":
		p.moveCursor(-1)
	case "cursor-top":
		p.cursor = 0
		p.ensureCursorVisible()
	case "cursor-bottom":
		p.cursor = len(p.view.Cards) - 1
		p.clampCursor()
		p.ensureCursorVisible()

	case "search":
		p.searchMode = true
		p.searchInput.SetValue(p.view.Query)
		p.searchInput.CursorEnd()
		return p.searchInput.Focus()

	case "clear-search":
		if p.view.Query != "" {
			p.searchInput.SetValue("")
			p.board.SetQuery("")
			p.cursor, p.scroll = 0, 0
		}

	case "new-note":
		if err := p.board.OpenCompose(); err != nil {
			return p.actionError(err)
		}
		return p.openComposeModal()

	case "edit-note":
		if !hasCard {
			return nil
		}
		if err := p.board.OpenEdit(card.ID); err != nil {
			return p.actionError(err)
		}
		return p.openComposeModal()

	case "delete-note":
		if !hasCard {
			return nil
		}
		if err := p.board.RequestDelete(card.ID); err != nil {
			return p.actionError(err)
		}
		p.openDeleteModal()

	case "grab":
		if hasCard {
			p.drag = &dragState{from: p.cursor, to: p.cursor}
		}

	case "preview":
		if hasCard {
			p.openPreview(card)
		}

	case "yank":
		if hasCard {
			return p.yank(card.Content)
		}

	case "reload":
		return p.reload()
	}
	return nil
}

// handleSearchKey edits the live filter. The board re-filters on every
// keystroke.
func (p *Plugin) handleSearchKey(k tea.KeyMsg) tea.Cmd {
	switch p.command(k) {
	case "apply-search":
		p.searchMode = false
		p.searchInput.Blur()
		return nil
	case "clear-search":
		p.searchMode = false
		p.searchInput.Blur()
		p.searchInput.SetValue("")
		p.board.SetQuery("")
		p.cursor, p.scroll = 0, 0
		return nil
	}

	var cmd tea.Cmd
	p.searchInput, cmd = p.searchInput.Update(k)
	if q := p.searchInput.Value(); q != p.view.Query {
		p.board.SetQuery(q)
		p.cursor, p.scroll = 0, 0
	}
	return cmd
}

// handleDragKey moves the grabbed card through the view and drops it.
func (p *Plugin) handleDragKey(k tea.KeyMsg) tea.Cmd {
	last := len(p.view.Cards) - 1
	switch p.command(k) {
	case "move-right":
		p.drag.to = min(p.drag.to+1, last)
	case "move-left":
		p.drag.to = max(p.drag.to-1, 0)
	case "move-down":
		p.drag.to = min(p.drag.to+p.columns, last)
	case "move-up":
		p.drag.to = max(p.drag.to-p.columns, 0)
	case "cancel-drag":
		p.cursor = p.drag.from
		p.drag = nil
		p.ensureCursorVisible()
		return nil
	case "drop":
		d := p.drag
		p.drag = nil
		err := p.board.Drag(d.from, d.to)
		p.cursor = d.from
		if err == nil || isPersistError(err) {
			p.cursor = d.to
		}
		p.clampCursor()
		p.ensureCursorVisible()
		return p.actionError(err)
	}
	p.cursor = p.drag.to
	p.ensureCursorVisible()
	return nil
}

// handleDeleteKey handles the delete confirmation dialog.
func (p *Plugin) handleDeleteKey(k tea.KeyMsg) tea.Cmd {
	action := p.command(k)
	if action == "" {
		var cmd tea.Cmd
		action, cmd = p.deleteModal.HandleKey(k)
		if action == "" {
			return cmd
		}
	}
	switch action {
	case "confirm":
		return p.actionError(p.board.ConfirmDelete())
	case "cancel":
		p.board.CancelDelete()
	}
	return nil
}

// handleComposeKey handles the compose dialog. The draft is mirrored into
// the controller after every key so a re-render keeps it.
func (p *Plugin) handleComposeKey(k tea.KeyMsg) tea.Cmd {
	var action string
	var cmd tea.Cmd
	switch p.command(k) {
	case "save-note":
		action = "save"
	case "cancel":
		action = "cancel"
	default:
		action, cmd = p.compose.HandleKey(k)
	}

	p.syncColor()
	if p.compose != nil {
		p.board.UpdateDraft(p.titleInput.Value(), p.contentArea.Value())
	}

	switch action {
	case "save":
		return p.submitCompose()
	case "cancel":
		p.board.CancelCompose()
		return nil
	case "":
		return cmd
	}
	if i, ok := swatchAction(action); ok {
		p.colorIdx = i
		p.syncColor()
		p.compose.SetFocus("save")
	}
	return cmd
}

// submitCompose validates and saves the draft. Validation errors keep the
// dialog open with the message shown inline.
func (p *Plugin) submitCompose() tea.Cmd {
	wasNew := !p.view.Draft.Editing()
	err := p.board.Submit(p.titleInput.Value(), p.contentArea.Value())
	if isValidationError(err) {
		p.composeErr = err.Error()
		return nil
	}
	if err == nil || isPersistError(err) {
		if wasNew && p.view.Query == "" {
			p.cursor, p.scroll = 0, 0
		}
	}
	return p.actionError(err)
}

func (p *Plugin) syncColor() {
	if p.compose == nil || p.colorIdx < 0 || p.colorIdx >= len(note.Palette) {
		return
	}
	want := note.Palette[p.colorIdx].Color
	if p.view.Draft.Color != want {
		_ = p.board.SelectColor(want)
	}
}

func (p *Plugin) moveCursor(delta int) {
	n := len(p.view.Cards)
	if n == 0 {
		return
	}
	next := p.cursor + delta
	if next < 0 || next >= n {
		return
	}
	p.cursor = next
	p.ensureCursorVisible()
}

// ensureCursorVisible scrolls the grid so the cursor row is on screen.
func (p *Plugin) ensureCursorVisible() {
	if p.view.ScrollLocked {
		return
	}
	rows := p.visibleRows()
	row := p.cursor / max(1, p.columns)
	if row < p.scroll {
		p.scroll = row
	}
	if row >= p.scroll+rows {
		p.scroll = row - rows + 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

var _ board.Renderer = (*Plugin)(nil)
