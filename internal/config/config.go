package config

import (
	"fmt"

	"github.com/marcus/notedeck/internal/slot"
)

// Config is the root configuration structure.
type Config struct {
	Notes  NotesConfig  `json:"notes" yaml:"notes"`
	Log    LogConfig    `json:"log" yaml:"log"`
	Keymap KeymapConfig `json:"keymap" yaml:"keymap"`
	UI     UIConfig     `json:"ui" yaml:"ui"`
}

// NotesConfig selects where notes are persisted.
type NotesConfig struct {
	Backend      string `json:"backend" yaml:"backend"`           // file, bolt, sqlite, memory
	Path         string `json:"path" yaml:"path"`                 // directory for backend files (supports ~)
	Key          string `json:"key" yaml:"key"`                   // slot name
	MaxBytes     int    `json:"maxBytes" yaml:"maxBytes"`         // quota, 0 = unlimited
	SQLiteDriver string `json:"sqliteDriver" yaml:"sqliteDriver"` // "sqlite" (pure Go) or "sqlite3" (cgo)
	Watch        bool   `json:"watch" yaml:"watch"`               // reload on external file edits
}

// LogConfig configures the TUI log file.
type LogConfig struct {
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides" yaml:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool        `json:"showFooter" yaml:"showFooter"`
	ShowClock  bool        `json:"showClock" yaml:"showClock"`
	Theme      ThemeConfig `json:"theme" yaml:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name" yaml:"name"`
	Overrides map[string]string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

const (
	defaultMaxBytes = 5 * 1024 * 1024
	defaultKey      = "notes"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Notes: NotesConfig{
			Backend:      slot.BackendFile,
			Path:         "~/.local/share/notedeck",
			Key:          defaultKey,
			MaxBytes:     defaultMaxBytes,
			SQLiteDriver: "sqlite",
			Watch:        true,
		},
		Log: LogConfig{
			File:       "~/.config/notedeck/notedeck.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowClock:  true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
	}
}

// Validate checks the configuration for errors, correcting values that have
// a sensible fallback.
func (c *Config) Validate() error {
	switch c.Notes.Backend {
	case slot.BackendFile, slot.BackendBolt, slot.BackendSQLite, slot.BackendMemory:
	default:
		return fmt.Errorf("notes.backend: unknown backend %q", c.Notes.Backend)
	}
	if c.Notes.Key == "" {
		c.Notes.Key = defaultKey
	}
	if c.Notes.MaxBytes < 0 {
		c.Notes.MaxBytes = 0
	}
	if c.Notes.SQLiteDriver != "sqlite" && c.Notes.SQLiteDriver != "sqlite3" {
		c.Notes.SQLiteDriver = "sqlite"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 5
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = 0
	}
	return nil
}

// SlotConfig converts the notes section into a slot configuration.
func (n NotesConfig) SlotConfig() slot.Config {
	return slot.Config{
		Backend:      n.Backend,
		Dir:          ExpandPath(n.Path),
		Key:          n.Key,
		MaxBytes:     n.MaxBytes,
		SQLiteDriver: n.SQLiteDriver,
	}
}
