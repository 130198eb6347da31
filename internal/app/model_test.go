package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notedeck/internal/config"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/msg"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/state"
)

// fakePlugin records the keys it receives.
type fakePlugin struct {
	id      string
	context string
	typing  bool
	focused bool
	keys    []string
	stopped bool
}

func (f *fakePlugin) ID() string                    { return f.id }
func (f *fakePlugin) Name() string                  { return f.id }
func (f *fakePlugin) Icon() string                  { return "F" }
func (f *fakePlugin) Init(*plugin.Context) error    { return nil }
func (f *fakePlugin) Start() tea.Cmd                { return nil }
func (f *fakePlugin) Stop()                         { f.stopped = true }
func (f *fakePlugin) View(width, height int) string { return "body of " + f.id }
func (f *fakePlugin) IsFocused() bool               { return f.focused }
func (f *fakePlugin) SetFocused(v bool)             { f.focused = v }
func (f *fakePlugin) FocusContext() string          { return f.context }
func (f *fakePlugin) ConsumesTextInput() bool       { return f.typing }

func (f *fakePlugin) Commands() []plugin.Command {
	return []plugin.Command{{ID: "new-note", Name: "New", Context: keymap.ContextNotes, Priority: 1}}
}

func (f *fakePlugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	if k, ok := m.(tea.KeyMsg); ok {
		f.keys = append(f.keys, k.String())
	}
	return f, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, plugins ...*fakePlugin) Model {
	t.Helper()
	if err := state.InitWithDir(t.TempDir()); err != nil {
		t.Fatalf("state init: %v", err)
	}
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	reg := plugin.NewRegistry(&plugin.Context{Keymap: km})
	for _, p := range plugins {
		if err := reg.Register(p); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	m := New(reg, km, config.Default(), "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func send(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestNew_FocusesInitialPlugin(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	cal := &fakePlugin{id: "calendar", context: keymap.ContextCalendar}
	if err := state.InitWithDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	reg := plugin.NewRegistry(&plugin.Context{})
	_ = reg.Register(notes)
	_ = reg.Register(cal)

	m := New(reg, km, nil, "calendar")
	if m.ActivePlugin().ID() != "calendar" || !cal.focused {
		t.Errorf("active = %s, focused = %v", m.ActivePlugin().ID(), cal.focused)
	}
	if m.activeContext != keymap.ContextCalendar {
		t.Errorf("context = %q", m.activeContext)
	}
}

func TestPluginSwitchingPersists(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	cal := &fakePlugin{id: "calendar", context: keymap.ContextCalendar}
	m := newTestModel(t, notes, cal)

	m, _ = send(m, runes("`"))
	if m.ActivePlugin().ID() != "calendar" {
		t.Fatalf("after next-plugin active = %s", m.ActivePlugin().ID())
	}
	if notes.focused || !cal.focused {
		t.Error("focus flags not updated")
	}
	if got := state.GetActivePlugin(); got != "calendar" {
		t.Errorf("saved plugin = %q", got)
	}

	m, _ = send(m, runes("1"))
	if m.ActivePlugin().ID() != "notes" {
		t.Errorf("focus-plugin-1 active = %s", m.ActivePlugin().ID())
	}
	m, _ = send(m, runes("~"))
	if m.ActivePlugin().ID() != "calendar" {
		t.Errorf("prev-plugin wraps, active = %s", m.ActivePlugin().ID())
	}
}

func TestPluginBindingsShadowGlobal(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	m := newTestModel(t, notes)
	km := m.keymap
	km.RegisterBinding(keymap.Binding{Key: "?", Command: "search", Context: keymap.ContextNotes})

	m, _ = send(m, runes("?"))
	if m.showHelp {
		t.Error("plugin binding should win over global help")
	}
	if len(notes.keys) != 1 || notes.keys[0] != "?" {
		t.Errorf("plugin keys = %v", notes.keys)
	}
}

func TestTypingPluginGetsGlobalKeys(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes, typing: true}
	m := newTestModel(t, notes)

	for _, k := range []string{"q", "`", "?"} {
		m, _ = send(m, runes(k))
	}
	if m.activeModal() != ModalNone {
		t.Errorf("modal opened while typing: %v", m.activeModal())
	}
	if strings.Join(notes.keys, "") != "q`?" {
		t.Errorf("plugin keys = %v", notes.keys)
	}
}

func TestSubViewOwnsKeyboard(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotesDelete}
	m := newTestModel(t, notes)

	m, _ = send(m, runes("q"))
	if m.quitModal != nil {
		t.Error("q should reach the delete dialog, not quit")
	}
	if len(notes.keys) != 1 {
		t.Errorf("plugin keys = %v", notes.keys)
	}
}

func TestQuitConfirm(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	m := newTestModel(t, notes)

	m, _ = send(m, runes("q"))
	if m.activeModal() != ModalQuitConfirm {
		t.Fatalf("modal = %v, want quit confirm", m.activeModal())
	}
	_ = m.View()

	m, _ = send(m, runes("n"))
	if m.quitModal != nil {
		t.Fatal("n should cancel")
	}
	if m.activeContext != keymap.ContextNotes {
		t.Errorf("context = %q", m.activeContext)
	}

	m, _ = send(m, runes("q"))
	_, cmd := send(m, runes("y"))
	if cmd == nil {
		t.Fatal("confirm should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !notes.stopped {
		t.Error("plugins should be stopped on quit")
	}
}

func TestCtrlCQuitsWhileTyping(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotesCompose, typing: true}
	m := newTestModel(t, notes)

	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHelpOverlay(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	m := newTestModel(t, notes)

	m, _ = send(m, runes("?"))
	if !m.showHelp {
		t.Fatal("help should open")
	}
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") || !strings.Contains(view, "toggle help") {
		t.Errorf("help view missing content:\n%s", view)
	}

	m, _ = send(m, runes("j"))
	if len(notes.keys) != 0 {
		t.Error("keys should not reach the plugin behind help")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp || m.activeContext != keymap.ContextNotes {
		t.Errorf("help open = %v, context = %q", m.showHelp, m.activeContext)
	}
}

func TestToastExpires(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	m := newTestModel(t, notes)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	next, _ := m.Update(msg.ToastMsg{Message: "Saved", Duration: time.Second, IsError: true})
	m = next.(Model)
	if !strings.Contains(m.View(), "Saved") {
		t.Error("toast not rendered")
	}
	if !m.statusIsError {
		t.Error("error flag lost")
	}

	now = now.Add(2 * time.Second)
	next, _ = m.Update(TickMsg(now))
	m = next.(Model)
	if m.statusMsg != "" {
		t.Errorf("toast should expire, got %q", m.statusMsg)
	}
}

func TestFooterHints(t *testing.T) {
	notes := &fakePlugin{id: "notes", context: keymap.ContextNotes}
	m := newTestModel(t, notes)

	footer := m.renderFooter()
	for _, want := range []string{"New", "help", "quit"} {
		if !strings.Contains(footer, want) {
			t.Errorf("footer missing %q: %s", want, footer)
		}
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlH})
	if m.showFooter {
		t.Error("ctrl+h should hide the footer")
	}
}

func TestTerminalTooSmall(t *testing.T) {
	m := newTestModel(t, &fakePlugin{id: "notes", context: keymap.ContextNotes})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(next.(Model).View(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
