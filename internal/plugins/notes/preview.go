package notes

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/notedeck/internal/board"
	"github.com/marcus/notedeck/internal/modal"
	"github.com/marcus/notedeck/internal/styles"
	"github.com/marcus/notedeck/internal/ui"
)

// previewState is the read-only markdown view of one note.
type previewState struct {
	id       string
	title    string
	content  string
	rendered string // cached glamour output for renderW
	renderW  int
	vp       viewport.Model
}

// openPreview shows card rendered as markdown.
func (p *Plugin) openPreview(card board.Card) {
	p.preview = &previewState{
		id:      card.ID,
		title:   card.Title,
		content: card.Content,
		vp:      viewport.New(0, 0),
	}
}

// renderMarkdown renders note content with the theme's glamour style,
// falling back to plain wrapped text if glamour fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.GetMarkdownTheme()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(content); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return strings.Join(ui.WrapLines(content, width, 0), "\n")
}

// previewModal lays the preview out for the screen.
func (p *Plugin) previewModal(screenW, screenH int) *modal.Modal {
	pv := p.preview
	width := min(max(ui.ModalWidthLarge, screenW*2/3), screenW-4)
	inner := max(10, width-modal.ModalPadding)
	if pv.rendered == "" || pv.renderW != inner {
		pv.rendered = renderMarkdown(pv.content, inner)
		pv.renderW = inner
		pv.vp.SetContent(pv.rendered)
	}
	pv.vp.Width = inner
	pv.vp.Height = max(3, screenH-12)

	return modal.New(ui.Truncate(pv.title, inner),
		modal.WithWidth(width),
		modal.WithHints(false),
		modal.WithFooter(styles.Muted.Render("j/k scroll · y yank · esc close")),
	).AddSection(modal.Custom(func(int, string, string) modal.RenderedSection {
		return modal.RenderedSection{Content: pv.vp.View()}
	}, nil))
}

// handlePreviewKey scrolls, yanks or closes the preview.
func (p *Plugin) handlePreviewKey(k tea.KeyMsg) tea.Cmd {
	pv := p.preview
	switch p.command(k) {
	case "close-preview":
		p.preview = nil
	case "scroll-down":
		pv.vp.SetYOffset(pv.vp.YOffset + 1)
	case "scroll-up":
		pv.vp.SetYOffset(pv.vp.YOffset - 1)
	case "yank":
		return p.yank(pv.content)
	default:
		var cmd tea.Cmd
		pv.vp, cmd = pv.vp.Update(k)
		return cmd
	}
	return nil
}
