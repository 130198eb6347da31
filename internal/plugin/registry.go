package plugin

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry holds the initialized plugins in tab order.
type Registry struct {
	ctx     *Context
	plugins []Plugin
}

// NewRegistry creates a registry whose plugins share ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{ctx: ctx}
}

// Register initializes p and appends it. A plugin whose Init fails is
// logged and left out so the rest of the app still starts.
func (r *Registry) Register(p Plugin) error {
	if err := p.Init(r.ctx); err != nil {
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin init failed", "plugin", p.ID(), "err", err)
		}
		return fmt.Errorf("init %s: %w", p.ID(), err)
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins. The slice is shared so the app
// can store updated plugin values in place.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Start returns the start commands of every plugin.
func (r *Registry) Start() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.plugins))
	for _, p := range r.plugins {
		cmds = append(cmds, p.Start())
	}
	return cmds
}

// Stop stops every plugin.
func (r *Registry) Stop() {
	for _, p := range r.plugins {
		p.Stop()
	}
}

// Context returns the shared plugin context.
func (r *Registry) Context() *Context {
	return r.ctx
}
