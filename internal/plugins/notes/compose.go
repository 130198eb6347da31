package notes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/modal"
	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/styles"
	"github.com/marcus/notedeck/internal/ui"
)

const (
	swatchPrefix    = "swatch-"
	titleCharLimit  = 120
	contentRows     = 6
	composeMinWidth = ui.ModalWidthMedium
)

// openComposeModal builds the compose dialog from the controller's draft.
func (p *Plugin) openComposeModal() tea.Cmd {
	d := p.view.Draft

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = titleCharLimit
	ti.SetValue(d.Title)
	ti.CursorEnd()
	p.titleInput = ti

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(contentRows)
	ta.SetValue(d.Content)
	p.contentArea = ta

	p.colorIdx = max(0, note.SwatchIndex(d.Color))
	p.composeErr = ""

	title := "New note"
	if d.Editing() {
		title = "Edit note"
	}

	items := make([]modal.ListItem, len(note.Palette))
	for i, sw := range note.Palette {
		items[i] = modal.ListItem{ID: swatchPrefix + strconv.Itoa(i), Label: sw.Name}
	}

	p.compose = modal.New(title,
		modal.WithWidth(max(composeMinWidth, p.composeWidth)),
		modal.WithPrimaryAction("save"),
		modal.WithHints(false),
		modal.WithFooter(styles.Muted.Render("tab next field · ctrl+s save · esc cancel")),
	).
		AddSection(modal.InputWithLabel("title", "Title", &p.titleInput, modal.WithSubmitOnEnter("save"))).
		AddSection(modal.Spacer()).
		AddSection(modal.Textarea("content", "Content", &p.contentArea)).
		AddSection(modal.Spacer()).
		AddSection(modal.Custom(p.renderSwatchRow, nil)).
		AddSection(modal.List("color", items, &p.colorIdx, modal.WithMaxVisible(len(items)))).
		AddSection(modal.When(func() bool { return p.composeErr != "" },
			modal.Custom(func(int, string, string) modal.RenderedSection {
				return modal.RenderedSection{Content: styles.StatusError.Render(p.composeErr)}
			}, nil))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", "save"),
			modal.Btn(" Cancel ", "cancel"),
		))
	return textinput.Blink
}

// renderSwatchRow shows every palette color with the current pick ticked.
func (p *Plugin) renderSwatchRow(int, string, string) modal.RenderedSection {
	chips := make([]string, len(note.Palette))
	for i, sw := range note.Palette {
		chips[i] = styles.NoteSwatch(string(sw.Color), i == p.colorIdx)
	}
	return modal.RenderedSection{Content: styles.Subtitle.Render("Color") + "\n" + strings.Join(chips, " ")}
}

// openDeleteModal builds the confirmation dialog for the pending note.
func (p *Plugin) openDeleteModal() {
	title := "this note"
	if pend := p.view.Pending; pend != nil {
		title = fmt.Sprintf("%q", ui.Truncate(pend.Title, 30))
	}
	d := ui.NewDeleteDialog("Delete note?", title+" will be removed. This cannot be undone.")
	p.deleteModal = d.ToModal()
}

// swatchAction decodes a color list action into a palette index.
func swatchAction(action string) (int, bool) {
	rest, ok := strings.CutPrefix(action, swatchPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || i >= len(note.Palette) {
		return 0, false
	}
	return i, true
}

func isValidationError(err error) bool {
	return errors.Is(err, note.ErrTitleRequired) || errors.Is(err, note.ErrContentRequired)
}

func isPersistError(err error) bool {
	return errors.Is(err, note.ErrPersist)
}
