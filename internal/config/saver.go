package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary for the managed keys.
type saveConfig struct {
	Notes  NotesConfig  `json:"notes"`
	Log    LogConfig    `json:"log"`
	Keymap KeymapConfig `json:"keymap"`
	UI     UIConfig     `json:"ui"`
}

// Save writes the config to ~/.config/notedeck/config.json. Top-level keys
// the config does not manage are carried over from the existing file.
func Save(cfg *Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("config path unavailable")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable file is replaced rather than blocking the save.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(saveConfig{
		Notes:  cfg.Notes,
		Log:    cfg.Log,
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	})
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = nil
	return Save(cfg)
}
