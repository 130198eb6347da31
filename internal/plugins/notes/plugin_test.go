package notes

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/board"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/msg"
	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/slot"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seed(t *testing.T, mem *slot.Memory, titles ...string) {
	t.Helper()
	notes := make([]note.Note, len(titles))
	for i, title := range titles {
		notes[i] = note.Note{
			ID:          "id-" + title,
			Title:       title,
			Content:     strings.ToLower(title) + " body",
			Color:       note.DefaultColor,
			LastUpdated: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}
	}
	data, err := note.Marshal(notes)
	if err != nil {
		t.Fatal(err)
	}
	mem.Set(data)
}

func newPlugin(t *testing.T, titles ...string) (*Plugin, *slot.Memory) {
	t.Helper()
	mem := slot.NewMemory("notes", 0)
	seed(t, mem, titles...)
	p := New()
	err := p.Init(&plugin.Context{
		Slot:   mem,
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	p.Start()
	p.View(200, 60)
	return p, mem
}

// press sends keys one at a time, re-rendering between them like the
// runtime does, and returns the last command.
func press(p *Plugin, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = p.Update(key(k))
		p.View(200, 60)
	}
	return cmd
}

func typeText(p *Plugin, s string) {
	for _, r := range s {
		press(p, string(r))
	}
}

func titles(p *Plugin) []string {
	notes := p.Board().Store().Notes()
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestInit_RequiresSlot(t *testing.T) {
	if err := New().Init(&plugin.Context{}); err == nil {
		t.Error("Init() without a slot should fail")
	}
}

func TestView_EmptyState(t *testing.T) {
	p, _ := newPlugin(t)
	if out := p.View(120, 30); !strings.Contains(out, "No notes yet") {
		t.Errorf("empty board should show hint, got:\n%s", out)
	}
}

func TestCompose_CreatesNoteAtFront(t *testing.T) {
	p, _ := newPlugin(t, "Work")

	press(p, "n")
	if got := p.FocusContext(); got != keymap.ContextNotesCompose {
		t.Fatalf("context = %q, want compose", got)
	}
	if !p.ConsumesTextInput() {
		t.Error("compose should consume text input")
	}

	typeText(p, "Groceries")
	press(p, "tab")
	typeText(p, "milk")
	press(p, "ctrl+s")

	if got := p.FocusContext(); got != keymap.ContextNotes {
		t.Errorf("context after save = %q", got)
	}
	got := titles(p)
	if len(got) != 2 || got[0] != "Groceries" {
		t.Fatalf("titles = %v, want Groceries first", got)
	}
	n := p.Board().Store().Notes()[0]
	if n.Content != "milk" || n.Color != note.DefaultColor {
		t.Errorf("note = %+v", n)
	}
}

func TestCompose_ValidationKeepsDialogOpen(t *testing.T) {
	p, mem := newPlugin(t)

	press(p, "n", "ctrl+s")

	if p.FocusContext() != keymap.ContextNotesCompose {
		t.Fatal("dialog should stay open on validation error")
	}
	if p.composeErr == "" {
		t.Error("validation message should be shown")
	}
	if mem.Writes() != 0 {
		t.Errorf("nothing should be persisted, got %d writes", mem.Writes())
	}

	press(p, "esc")
	if p.FocusContext() != keymap.ContextNotes || p.Board().Mode() != board.ModeIdle {
		t.Error("esc should close the dialog")
	}
}

func TestCompose_EditPrefillsAndKeepsPosition(t *testing.T) {
	p, _ := newPlugin(t, "A", "B", "C")

	press(p, "l", "e")
	if v := p.titleInput.Value(); v != "B" {
		t.Fatalf("title prefill = %q, want B", v)
	}
	typeText(p, "2")
	press(p, "enter") // enter in the title input submits

	if got := strings.Join(titles(p), ","); got != "A,B2,C" {
		t.Errorf("titles = %s, want A,B2,C", got)
	}
}

func TestCompose_ColorPick(t *testing.T) {
	p, _ := newPlugin(t)

	press(p, "n")
	typeText(p, "Colored")
	press(p, "tab")
	typeText(p, "body")
	press(p, "tab") // content -> color list
	if p.compose.FocusedID() != "color" {
		t.Fatalf("focus = %q, want color", p.compose.FocusedID())
	}
	press(p, "down", "down")
	if p.view.Draft.Color != note.Palette[2].Color {
		t.Errorf("draft color = %q, want %q", p.view.Draft.Color, note.Palette[2].Color)
	}
	press(p, "ctrl+s")

	if c := p.Board().Store().Notes()[0].Color; c != note.Palette[2].Color {
		t.Errorf("saved color = %q", c)
	}
}

func TestDelete_ConfirmAndCancel(t *testing.T) {
	p, _ := newPlugin(t, "A", "B")

	press(p, "d")
	if p.FocusContext() != keymap.ContextNotesDelete {
		t.Fatalf("context = %q, want delete", p.FocusContext())
	}
	press(p, "n")
	if len(titles(p)) != 2 || p.FocusContext() != keymap.ContextNotes {
		t.Fatal("cancel should keep both notes")
	}

	press(p, "X", "y")
	if got := titles(p); len(got) != 1 || got[0] != "B" {
		t.Errorf("titles = %v, want [B]", got)
	}
}

func TestFilteredDelete_UsesTrueIndex(t *testing.T) {
	p, _ := newPlugin(t, "Work", "Groceries")

	press(p, "/")
	if !p.ConsumesTextInput() {
		t.Fatal("search should consume text input")
	}
	typeText(p, "groc")
	press(p, "enter")

	if len(p.view.Cards) != 1 || p.view.Cards[0].Title != "Groceries" {
		t.Fatalf("filtered cards = %+v", p.view.Cards)
	}
	press(p, "d", "y")

	if got := titles(p); len(got) != 1 || got[0] != "Work" {
		t.Errorf("titles = %v, want [Work]", got)
	}
	if p.view.Query != "groc" {
		t.Errorf("query should survive the delete, got %q", p.view.Query)
	}

	press(p, "esc")
	if p.view.Query != "" || len(p.view.Cards) != 1 {
		t.Errorf("esc should clear the filter, view = %+v", p.view)
	}
}

func TestDrag_ReordersAndPersists(t *testing.T) {
	p, mem := newPlugin(t, "A", "B", "C")

	press(p, " ")
	if p.FocusContext() != keymap.ContextNotesDrag {
		t.Fatalf("context = %q, want drag", p.FocusContext())
	}
	press(p, "l", "l")
	if out := p.View(200, 60); !strings.Contains(out, "moving note") {
		t.Error("header should show drag hint")
	}
	press(p, " ")

	if got := strings.Join(titles(p), ","); got != "B,C,A" {
		t.Errorf("titles = %s, want B,C,A", got)
	}
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}

	stored, err := mem.Read()
	if err != nil {
		t.Fatal(err)
	}
	notes, _ := note.Unmarshal(stored)
	if len(notes) != 3 || notes[0].Title != "B" {
		t.Errorf("persisted order = %+v", notes)
	}
}

func TestDrag_CancelKeepsOrder(t *testing.T) {
	p, mem := newPlugin(t, "A", "B")

	press(p, " ", "l", "esc")
	if got := strings.Join(titles(p), ","); got != "A,B" {
		t.Errorf("titles = %s", got)
	}
	if mem.Writes() != 0 {
		t.Errorf("cancelled drag wrote %d times", mem.Writes())
	}
}

func TestPersistFailure_ShowsErrorToast(t *testing.T) {
	p, mem := newPlugin(t, "A")
	mem.FailWrites(slot.ErrQuotaExceeded)

	press(p, "d")
	cmd := press(p, "y")
	if cmd == nil {
		t.Fatal("expected a toast command")
	}
	toast, ok := cmd().(msg.ToastMsg)
	if !ok || !toast.IsError || !strings.Contains(toast.Message, "quota") {
		t.Errorf("toast = %+v", toast)
	}
	if len(titles(p)) != 0 {
		t.Error("memory state should keep the delete")
	}
}

func TestSlotChanged_Reloads(t *testing.T) {
	p, mem := newPlugin(t, "A")
	press(p, "e")

	seed(t, mem, "Other")
	p.Update(SlotChangedMsg{})

	if got := titles(p); len(got) != 1 || got[0] != "Other" {
		t.Errorf("titles = %v", got)
	}
	if p.FocusContext() != keymap.ContextNotes {
		t.Error("editing a vanished note should close the dialog")
	}
}

func TestWatch_DeliversSlotChanged(t *testing.T) {
	ch := make(chan struct{}, 1)
	p := New()
	if err := p.Init(&plugin.Context{Slot: slot.NewMemory("notes", 0), Watch: ch}); err != nil {
		t.Fatal(err)
	}
	cmd := p.waitForChange()
	ch <- struct{}{}
	if _, ok := cmd().(SlotChangedMsg); !ok {
		t.Error("expected SlotChangedMsg")
	}
	close(ch)
	if m := p.waitForChange()(); m != nil {
		t.Errorf("closed watcher should yield nil, got %T", m)
	}
}

func TestYank(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	p, _ := newPlugin(t, "A")
	press(p, "y")
	if copied != "a body" {
		t.Errorf("copied %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	toast, _ := press(p, "y")().(msg.ToastMsg)
	if !toast.IsError {
		t.Error("clipboard failure should be an error toast")
	}
}

func TestPreview_OpenAndClose(t *testing.T) {
	p, _ := newPlugin(t, "Readme")

	press(p, "enter")
	if p.FocusContext() != keymap.ContextNotesPreview {
		t.Fatalf("context = %q, want preview", p.FocusContext())
	}
	if out := p.View(120, 40); !strings.Contains(out, "Readme") {
		t.Error("preview should show the note title")
	}
	press(p, "esc")
	if p.preview != nil {
		t.Error("esc should close the preview")
	}
}

func TestCommands_FollowContext(t *testing.T) {
	p, _ := newPlugin(t, "A")
	ctx := p.FocusContext()
	for _, c := range p.Commands() {
		if c.Context != ctx {
			t.Errorf("command %s has context %q, want %q", c.ID, c.Context, ctx)
		}
	}
	press(p, "d")
	if cmds := p.Commands(); len(cmds) == 0 || cmds[0].Context != keymap.ContextNotesDelete {
		t.Errorf("delete commands = %+v", cmds)
	}
}

func TestRenderCard_LabelsTimestamp(t *testing.T) {
	card := board.Card{ID: "a", Title: "Groceries", Content: "milk", Color: note.Palette[0].Color, Updated: "17/10/26, 09:30"}
	out := renderCard(card, 40, false, false)
	if !strings.Contains(out, "Last Updated: 17/10/26, 09:30") {
		t.Errorf("card footer missing labelled timestamp:\n%s", out)
	}

	card.Updated = ""
	if strings.Contains(renderCard(card, 40, false, false), updatedLabel) {
		t.Error("label should be omitted when the note has no timestamp")
	}
}
