package keymap

// Contexts used by the app and plugins.
const (
	ContextGlobal       = "global"
	ContextNotes        = "notes"
	ContextNotesSearch  = "notes-search"
	ContextNotesDrag    = "notes-drag"
	ContextNotesCompose = "notes-compose"
	ContextNotesPreview = "notes-preview"
	ContextNotesDelete  = "notes-delete"
	ContextCalendar     = "calendar"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: ContextGlobal},
		{Key: "ctrl+c", Command: "quit", Context: ContextGlobal},
		{Key: "`", Command: "next-plugin", Context: ContextGlobal},
		{Key: "~", Command: "prev-plugin", Context: ContextGlobal},
		{Key: "1", Command: "focus-plugin-1", Context: ContextGlobal},
		{Key: "2", Command: "focus-plugin-2", Context: ContextGlobal},
		{Key: "?", Command: "toggle-help", Context: ContextGlobal},
		{Key: "ctrl+h", Command: "toggle-footer", Context: ContextGlobal},

		// Notes board
		{Key: "j", Command: "cursor-down", Context: ContextNotes},
		{Key: "down", Command: "cursor-down", Context: ContextNotes},
		{Key: "k", Command: "cursor-up", Context: ContextNotes},
		{Key: "up", Command: "cursor-up", Context: ContextNotes},
		{Key: "h", Command: "cursor-left", Context: ContextNotes},
		{Key: "left", Command: "cursor-left", Context: ContextNotes},
		{Key: "l", Command: "cursor-right", Context: ContextNotes},
		{Key: "right", Command: "cursor-right", Context: ContextNotes},
		{Key: "g", Command: "cursor-top", Context: ContextNotes},
		{Key: "G", Command: "cursor-bottom", Context: ContextNotes},
		{Key: "/", Command: "search", Context: ContextNotes},
		{Key: "esc", Command: "clear-search", Context: ContextNotes},
		{Key: "n", Command: "new-note", Context: ContextNotes},
		{Key: "e", Command: "edit-note", Context: ContextNotes},
		{Key: "d", Command: "delete-note", Context: ContextNotes},
		{Key: "X", Command: "delete-note", Context: ContextNotes},
		{Key: " ", Command: "grab", Context: ContextNotes},
		{Key: "enter", Command: "preview", Context: ContextNotes},
		{Key: "y", Command: "yank", Context: ContextNotes},
		{Key: "r", Command: "reload", Context: ContextNotes},

		// Notes search input
		{Key: "enter", Command: "apply-search", Context: ContextNotesSearch},
		{Key: "esc", Command: "clear-search", Context: ContextNotesSearch},

		// Notes drag (a card is grabbed)
		{Key: "j", Command: "move-down", Context: ContextNotesDrag},
		{Key: "down", Command: "move-down", Context: ContextNotesDrag},
		{Key: "k", Command: "move-up", Context: ContextNotesDrag},
		{Key: "up", Command: "move-up", Context: ContextNotesDrag},
		{Key: "h", Command: "move-left", Context: ContextNotesDrag},
		{Key: "left", Command: "move-left", Context: ContextNotesDrag},
		{Key: "l", Command: "move-right", Context: ContextNotesDrag},
		{Key: "right", Command: "move-right", Context: ContextNotesDrag},
		{Key: " ", Command: "drop", Context: ContextNotesDrag},
		{Key: "enter", Command: "drop", Context: ContextNotesDrag},
		{Key: "esc", Command: "cancel-drag", Context: ContextNotesDrag},

		// Compose modal
		{Key: "ctrl+s", Command: "save-note", Context: ContextNotesCompose},
		{Key: "esc", Command: "cancel", Context: ContextNotesCompose},
		{Key: "tab", Command: "next-field", Context: ContextNotesCompose},

		// Delete confirmation
		{Key: "y", Command: "confirm", Context: ContextNotesDelete},
		{Key: "n", Command: "cancel", Context: ContextNotesDelete},
		{Key: "esc", Command: "cancel", Context: ContextNotesDelete},

		// Markdown preview
		{Key: "esc", Command: "close-preview", Context: ContextNotesPreview},
		{Key: "enter", Command: "close-preview", Context: ContextNotesPreview},
		{Key: "j", Command: "scroll-down", Context: ContextNotesPreview},
		{Key: "down", Command: "scroll-down", Context: ContextNotesPreview},
		{Key: "k", Command: "scroll-up", Context: ContextNotesPreview},
		{Key: "up", Command: "scroll-up", Context: ContextNotesPreview},
		{Key: "y", Command: "yank", Context: ContextNotesPreview},

		// Calendar
		{Key: "h", Command: "prev-month", Context: ContextCalendar},
		{Key: "left", Command: "prev-month", Context: ContextCalendar},
		{Key: "l", Command: "next-month", Context: ContextCalendar},
		{Key: "right", Command: "next-month", Context: ContextCalendar},
		{Key: "H", Command: "prev-year", Context: ContextCalendar},
		{Key: "L", Command: "next-year", Context: ContextCalendar},
		{Key: "t", Command: "today", Context: ContextCalendar},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
