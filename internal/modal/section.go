package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notedeck/internal/styles"
)

// FocusableInfo describes a focusable element inside a rendered section.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one block of modal content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (action string, cmd tea.Cmd)
}

// textSection renders static wrapped text.
type textSection struct{ text string }

// Text creates a static text section.
func Text(s string) Section { return &textSection{text: s} }

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: lipgloss.NewStyle().Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// spacerSection renders a blank line.
type spacerSection struct{}

// Spacer creates a single blank line.
func Spacer() Section { return spacerSection{} }

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// customSection delegates to caller-supplied functions.
type customSection struct {
	render func(contentWidth int, focusID, hoverID string) RenderedSection
	update func(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Custom creates a section from render and (optional) update functions.
func Custom(render func(contentWidth int, focusID, hoverID string) RenderedSection, update func(msg tea.Msg, focusID string) (string, tea.Cmd)) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.render(contentWidth, focusID, hoverID)
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}

// whenSection shows inner only while cond returns true.
type whenSection struct {
	cond  func() bool
	inner Section
}

// When renders inner only when cond() is true. A hidden section takes no
// space in the layout.
func When(cond func() bool, inner Section) Section {
	return &whenSection{cond: cond, inner: inner}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

// ButtonDef describes one button in a Buttons row.
type ButtonDef struct {
	Label  string
	ID     string
	danger bool
}

// ButtonOption configures a button.
type ButtonOption func(*ButtonDef)

// BtnDanger renders the button with the destructive style.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// Btn creates a button definition.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct{ buttons []ButtonDef }

// Buttons creates a horizontal row of focusable buttons.
func Buttons(btns ...ButtonDef) Section { return &buttonsSection{buttons: btns} }

func (s *buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var sb strings.Builder
	focusables := make([]FocusableInfo, 0, len(s.buttons))
	x := 0
	for i, b := range s.buttons {
		if i > 0 {
			sb.WriteString("  ")
			x += 2
		}
		style := styles.Button
		switch {
		case b.danger && b.ID == focusID:
			style = styles.ButtonDangerFocused
		case b.danger:
			style = styles.ButtonDanger
		case b.ID == focusID:
			style = styles.ButtonFocused
		case b.ID == hoverID:
			style = styles.ButtonHover
		}
		rendered := style.Render(b.Label)
		w := ansi.StringWidth(rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		sb.WriteString(rendered)
		x += w
	}
	return RenderedSection{Content: sb.String(), Focusables: focusables}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || km.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithSubmitOnEnter makes Enter in the input return submitID as the action.
func WithSubmitOnEnter(submitID string) InputOption {
	return func(s *inputSection) { s.submitID = submitID }
}

type inputSection struct {
	id       string
	label    string
	model    *textinput.Model
	submitID string
}

// Input creates a single-line text input bound to model.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	return InputWithLabel(id, "", model, opts...)
}

// InputWithLabel creates a labelled single-line text input.
func InputWithLabel(id, label string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, label: label, model: model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inputSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	if focusID == s.id {
		s.model.Focus()
	} else {
		s.model.Blur()
	}
	s.model.Width = max(1, contentWidth-4)

	var sb strings.Builder
	offsetY := 0
	if s.label != "" {
		sb.WriteString(styles.Subtitle.Render(s.label))
		sb.WriteString("\n")
		offsetY = 1
	}
	border := styles.BorderNormal
	if focusID == s.id {
		border = styles.BorderActive
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Width(contentWidth - 2).
		Render(s.model.View())
	sb.WriteString(box)
	return RenderedSection{
		Content:    sb.String(),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: lipgloss.Height(box)}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "enter" {
		if s.submitID != "" {
			return s.submitID, nil
		}
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

type textareaSection struct {
	id    string
	label string
	model *textarea.Model
}

// Textarea creates a labelled multi-line input bound to model. Enter
// inserts a newline; ctrl+s is left to the modal owner.
func Textarea(id, label string, model *textarea.Model) Section {
	return &textareaSection{id: id, label: label, model: model}
}

func (s *textareaSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	if focusID == s.id {
		s.model.Focus()
	} else {
		s.model.Blur()
	}
	s.model.SetWidth(max(1, contentWidth-2))

	var sb strings.Builder
	offsetY := 0
	if s.label != "" {
		sb.WriteString(styles.Subtitle.Render(s.label))
		sb.WriteString("\n")
		offsetY = 1
	}
	border := styles.BorderNormal
	if focusID == s.id {
		border = styles.BorderActive
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Render(s.model.View())
	sb.WriteString(box)
	return RenderedSection{
		Content:    sb.String(),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: lipgloss.Height(box)}},
	}
}

func (s *textareaSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

// measureHeight returns the number of lines in s, ignoring one trailing
// newline.
func measureHeight(s string) int {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// enterConsumer is implemented by sections that use Enter themselves, so the
// modal must not turn it into the primary action.
type enterConsumer interface {
	consumesEnter(focusID string) bool
}

func (s *textareaSection) consumesEnter(focusID string) bool { return focusID == s.id }
