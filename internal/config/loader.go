package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/notedeck"
	configFile = "config.json"
)

// rawConfig is the unmarshaling intermediary. Pointers distinguish "unset"
// from zero values so defaults survive a partial file.
type rawConfig struct {
	Notes  rawNotesConfig `json:"notes" yaml:"notes"`
	Log    rawLogConfig   `json:"log" yaml:"log"`
	Keymap KeymapConfig   `json:"keymap" yaml:"keymap"`
	UI     rawUIConfig    `json:"ui" yaml:"ui"`
}

type rawNotesConfig struct {
	Backend      string `json:"backend" yaml:"backend"`
	Path         string `json:"path" yaml:"path"`
	Key          string `json:"key" yaml:"key"`
	MaxBytes     *int   `json:"maxBytes" yaml:"maxBytes"`
	SQLiteDriver string `json:"sqliteDriver" yaml:"sqliteDriver"`
	Watch        *bool  `json:"watch" yaml:"watch"`
}

type rawLogConfig struct {
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  *int   `json:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups *int   `json:"maxBackups" yaml:"maxBackups"`
}

type rawUIConfig struct {
	ShowFooter *bool       `json:"showFooter" yaml:"showFooter"`
	ShowClock  *bool       `json:"showClock" yaml:"showClock"`
	Theme      ThemeConfig `json:"theme" yaml:"theme"`
}

var testConfigPath string

// SetTestConfigPath redirects ConfigPath, Load and Save to path.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notedeck/config.json. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Notes
	if raw.Notes.Backend != "" {
		cfg.Notes.Backend = raw.Notes.Backend
	}
	if raw.Notes.Path != "" {
		cfg.Notes.Path = raw.Notes.Path
	}
	if raw.Notes.Key != "" {
		cfg.Notes.Key = raw.Notes.Key
	}
	if raw.Notes.MaxBytes != nil {
		cfg.Notes.MaxBytes = *raw.Notes.MaxBytes
	}
	if raw.Notes.SQLiteDriver != "" {
		cfg.Notes.SQLiteDriver = raw.Notes.SQLiteDriver
	}
	if raw.Notes.Watch != nil {
		cfg.Notes.Watch = *raw.Notes.Watch
	}

	// Log
	if raw.Log.File != "" {
		cfg.Log.File = raw.Log.File
	}
	if raw.Log.MaxSizeMB != nil {
		cfg.Log.MaxSizeMB = *raw.Log.MaxSizeMB
	}
	if raw.Log.MaxBackups != nil {
		cfg.Log.MaxBackups = *raw.Log.MaxBackups
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowClock != nil {
		cfg.UI.ShowClock = *raw.UI.ShowClock
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	for k, v := range raw.UI.Theme.Overrides {
		cfg.UI.Theme.Overrides[k] = v
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
