// Package state persists small UI preferences between runs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	ActivePlugin string `json:"activePlugin,omitempty"` // plugin ID shown on startup

	// Plugin-specific state
	Calendar CalendarState `json:"calendar,omitempty"`
}

// CalendarState remembers the month the calendar was showing.
type CalendarState struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"` // 1-12, 0 = current month
}

const defaultPlugin = "notes"

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notedeck"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{
		ActivePlugin: defaultPlugin,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}
	if err := json.Unmarshal(data, current); err != nil {
		return fmt.Errorf("state %s: %w", path, err)
	}
	return nil
}

// Save writes state to disk. It is a no-op before Init.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetActivePlugin returns the plugin that was focused last.
func GetActivePlugin() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.ActivePlugin == "" {
		return defaultPlugin
	}
	return current.ActivePlugin
}

// SetActivePlugin saves the focused plugin.
func SetActivePlugin(id string) error {
	return update(func(st *State) { st.ActivePlugin = id })
}

// GetCalendarMonth returns the saved calendar month. ok is false when
// nothing has been saved.
func GetCalendarMonth() (year, month int, ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.Calendar.Month < 1 || current.Calendar.Month > 12 {
		return 0, 0, false
	}
	return current.Calendar.Year, current.Calendar.Month, true
}

// SetCalendarMonth saves the calendar month.
func SetCalendarMonth(year, month int) error {
	return update(func(st *State) { st.Calendar = CalendarState{Year: year, Month: month} })
}

// update applies fn under the write lock and saves the result.
func update(fn func(*State)) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	fn(current)
	mu.Unlock()
	return Save()
}
