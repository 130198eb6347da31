package keymap

import (
	"reflect"
	"testing"
)

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookup_ContextShadowsGlobal(t *testing.T) {
	r := newDefaultRegistry()

	tests := []struct {
		key, context, want string
	}{
		{"n", ContextNotes, "new-note"},
		{"q", ContextNotes, "quit"},
		{" ", ContextNotes, "grab"},
		{" ", ContextNotesDrag, "drop"},
		{"esc", ContextNotesSearch, "clear-search"},
		{"t", ContextCalendar, "today"},
		{"n", ContextCalendar, ""},
		{"y", ContextNotesDelete, "confirm"},
	}
	for _, tt := range tests {
		if got := r.Lookup(tt.key, tt.context); got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.key, tt.context, got, tt.want)
		}
	}
}

func TestLookupLocal_NoGlobalFallback(t *testing.T) {
	r := newDefaultRegistry()
	if got := r.LookupLocal("q", ContextNotes); got != "" {
		t.Errorf("LookupLocal(q) = %q, want empty", got)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := newDefaultRegistry()
	r.ApplyOverrides(map[string]string{
		"notes:x": "delete-note",
		"notes:d": "",
		"ctrl+q":  "quit",
		":":       "search",
	})

	if got := r.Lookup("x", ContextNotes); got != "delete-note" {
		t.Errorf("override x = %q", got)
	}
	if got := r.Lookup("d", ContextNotes); got != "" {
		t.Errorf("unbound d = %q", got)
	}
	if got := r.Lookup("ctrl+q", ContextCalendar); got != "quit" {
		t.Errorf("global override = %q", got)
	}
	// A bare ":" has no context prefix and binds globally.
	if got := r.Lookup(":", ContextGlobal); got != "search" {
		t.Errorf("colon key = %q", got)
	}
}

func TestKeysFor(t *testing.T) {
	r := newDefaultRegistry()
	got := r.KeysFor("delete-note", ContextNotes)
	if want := []string{"X", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("KeysFor() = %v, want %v", got, want)
	}
}

func TestDisplayKey(t *testing.T) {
	if DisplayKey(" ") != "space" || DisplayKey("ctrl+s") != "ctrl+s" {
		t.Error("DisplayKey mismatch")
	}
}

func TestBindingsForContext_KeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "b", Command: "second", Context: "x"})
	r.RegisterBinding(Binding{Key: "a", Command: "first", Context: "x"})
	r.RegisterBinding(Binding{Key: "b", Command: "replaced", Context: "x"})

	got := r.BindingsForContext("x")
	if len(got) != 2 || got[0].Command != "replaced" || got[1].Key != "a" {
		t.Errorf("BindingsForContext() = %+v", got)
	}

	r.SetUserOverride("x:b", "")
	if got := r.BindingsForContext("x"); len(got) != 1 || got[0].Key != "a" {
		t.Errorf("after unbind = %+v", got)
	}
}
