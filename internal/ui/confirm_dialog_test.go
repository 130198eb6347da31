package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.Message != "Test message" {
		t.Errorf("expected message 'Test message', got %q", d.Message)
	}
	if d.ConfirmLabel != " Confirm " || d.CancelLabel != " Cancel " {
		t.Errorf("labels = %q / %q", d.ConfirmLabel, d.CancelLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
	if d.Danger {
		t.Error("plain confirm dialog should not be destructive")
	}
}

func TestNewDeleteDialog_Render(t *testing.T) {
	d := NewDeleteDialog("Delete note?", "Groceries will be removed.")
	if !d.Danger || d.ConfirmLabel != " Delete " {
		t.Fatalf("delete dialog = %+v", d)
	}

	output := d.ToModal().Render(80, 24)
	for _, want := range []string{"Delete note?", "Groceries will be removed.", "Delete", "Cancel"} {
		if !strings.Contains(output, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(output, "tab next field") {
		t.Error("render should not include modal hint line")
	}
}

func TestConfirmDialog_ToModalActions(t *testing.T) {
	m := NewDeleteDialog("Test", "Message").ToModal()
	m.Render(80, 24)

	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "confirm" {
		t.Errorf("expected confirm action, got %q", action)
	}

	m.SetFocus("cancel")
	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "cancel" {
		t.Errorf("expected cancel action, got %q", action)
	}

	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if action != "cancel" {
		t.Errorf("expected cancel on esc, got %q", action)
	}
}
