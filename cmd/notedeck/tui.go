package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/marcus/notedeck/internal/app"
	"github.com/marcus/notedeck/internal/config"
	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/plugins/calendar"
	"github.com/marcus/notedeck/internal/plugins/notes"
	"github.com/marcus/notedeck/internal/slot"
	"github.com/marcus/notedeck/internal/state"
)

// runTUI starts the full-screen board.
func runTUI() error {
	// The alt screen owns stderr, so the TUI logs to a rotated file.
	logFile := &lumberjack.Logger{
		Filename:   config.ExpandPath(cfg.Log.File),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   true,
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	// Load persistent state (ignore errors - state is optional)
	if err := state.Init(); err != nil {
		logger.Warn("state init failed", "err", err)
	}

	s, err := slot.Open(cfg.Notes.SlotConfig())
	if err != nil {
		return fmt.Errorf("open notes slot: %w", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pluginCtx := &plugin.Context{
		Config: cfg,
		Logger: logger,
		Slot:   s,
	}
	if f, ok := s.(*slot.File); ok && cfg.Notes.Watch {
		changes, err := slot.Watch(ctx, f, logger)
		if err != nil {
			logger.Warn("watch notes file failed", "err", err)
		} else {
			pluginCtx.Watch = changes
		}
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.ApplyOverrides(cfg.Keymap.Overrides)
	pluginCtx.Keymap = km

	// Register plugins (order determines tab order)
	registry := plugin.NewRegistry(pluginCtx)
	if err := registry.Register(notes.New()); err != nil {
		return err
	}
	_ = registry.Register(calendar.New())

	model := app.New(registry, km, cfg, state.GetActivePlugin())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
