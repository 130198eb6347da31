// Package keymap maps keys to commands per focus context.
package keymap

import (
	"sort"
	"strings"
	"sync"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string // tea.KeyMsg.String() form, e.g. "ctrl+s", " "
	Command string
	Context string
}

// Registry resolves keys to commands. Context bindings shadow global ones.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string][]Binding // context -> bindings in registration order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string][]Binding)}
}

// RegisterBinding adds or replaces a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(b.Context, b.Key, b.Command)
}

func (r *Registry) set(ctx, key, command string) {
	list := r.bindings[ctx]
	for i, b := range list {
		if b.Key != key {
			continue
		}
		if command == "" {
			r.bindings[ctx] = append(list[:i:i], list[i+1:]...)
		} else {
			list[i].Command = command
		}
		return
	}
	if command != "" {
		r.bindings[ctx] = append(list, Binding{Key: key, Command: command, Context: ctx})
	}
}

// SetUserOverride applies a user binding from config. name is either a
// bare key (global context) or "context:key"; an empty command unbinds.
func (r *Registry) SetUserOverride(name, command string) {
	ctx, key := ContextGlobal, name
	if i := strings.Index(name, ":"); i > 0 && i < len(name)-1 {
		ctx, key = name[:i], name[i+1:]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(ctx, key, command)
}

// ApplyOverrides applies every override from config in key order.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.SetUserOverride(name, overrides[name])
	}
}

// Lookup returns the command bound to key in context, falling back to the
// global context. It returns "" when nothing is bound.
func (r *Registry) Lookup(key, context string) string {
	if cmd := r.LookupLocal(key, context); cmd != "" {
		return cmd
	}
	return r.LookupLocal(key, ContextGlobal)
}

// LookupLocal is Lookup without the global fallback.
func (r *Registry) LookupLocal(key, context string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command
		}
	}
	return ""
}

// BindingsForContext returns a copy of the bindings for context.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Binding(nil), r.bindings[context]...)
}

// KeysFor returns the keys bound to command in context, sorted.
func (r *Registry) KeysFor(command, context string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(context) {
		if b.Command == command {
			keys = append(keys, b.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// DisplayKey renders a key for footer hints.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return key
}
