package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// swap points the package at a temp state file and restores it afterwards.
func swap(t *testing.T, st *State) string {
	t.Helper()
	originalPath := path
	originalCurrent := current
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})
	path = filepath.Join(t.TempDir(), "state.json")
	current = st
	return path
}

func TestInit(t *testing.T) {
	swap(t, nil)

	// Use InitWithDir to avoid reading real user state
	err := InitWithDir(filepath.Join(t.TempDir(), ".config", "notedeck"))
	if err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}

	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if current.ActivePlugin != "notes" {
		t.Errorf("default ActivePlugin = %q, want notes", current.ActivePlugin)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	stateFile := swap(t, nil)

	data, _ := json.Marshal(State{ActivePlugin: "calendar", Calendar: CalendarState{Year: 2026, Month: 2}})
	if err := os.WriteFile(stateFile, data, 0644); err != nil {
		t.Fatalf("failed to write test state file: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := GetActivePlugin(); got != "calendar" {
		t.Errorf("ActivePlugin = %q, want calendar", got)
	}
	y, m, ok := GetCalendarMonth()
	if !ok || y != 2026 || m != 2 {
		t.Errorf("GetCalendarMonth() = %d, %d, %v", y, m, ok)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	stateFile := swap(t, nil)

	if err := os.WriteFile(stateFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("failed to write invalid JSON: %v", err)
	}

	if err := Load(); err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestSave_CreateDirectories(t *testing.T) {
	swap(t, &State{ActivePlugin: "notes"})
	stateFile := filepath.Join(t.TempDir(), "deep", "nested", "notedeck", "state.json")
	path = stateFile

	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if _, err := os.Stat(stateFile); err != nil {
		t.Fatalf("state file not created: %v", err)
	}
}

func TestSave_NilCurrent(t *testing.T) {
	swap(t, nil)

	// Should not error when current is nil
	if err := Save(); err != nil {
		t.Fatalf("Save() with nil current should not error, got %v", err)
	}
}

func TestGetActivePlugin_Default(t *testing.T) {
	swap(t, nil)

	if got := GetActivePlugin(); got != "notes" {
		t.Errorf("GetActivePlugin() with nil current = %q, want notes", got)
	}
}

func TestGetCalendarMonth_Unset(t *testing.T) {
	swap(t, &State{Calendar: CalendarState{Year: 2026, Month: 13}})

	if _, _, ok := GetCalendarMonth(); ok {
		t.Error("out-of-range month should read as unset")
	}
}

func TestSetCalendarMonth_InitializesNilState(t *testing.T) {
	stateFile := swap(t, nil)

	if err := SetCalendarMonth(2025, 12); err != nil {
		t.Fatalf("SetCalendarMonth() failed: %v", err)
	}
	if current == nil {
		t.Fatal("SetCalendarMonth() should initialize current state")
	}

	// Verify saved to disk
	data, _ := os.ReadFile(stateFile)
	var loaded State
	_ = json.Unmarshal(data, &loaded)
	if loaded.Calendar.Year != 2025 || loaded.Calendar.Month != 12 {
		t.Errorf("saved calendar = %+v", loaded.Calendar)
	}
}

func TestConcurrentAccess(t *testing.T) {
	swap(t, &State{ActivePlugin: "notes"})

	var wg sync.WaitGroup
	errors := make(chan error, 10)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := "notes"
			if n%2 == 0 {
				id = "calendar"
			}
			if err := SetActivePlugin(id); err != nil {
				errors <- err
			}
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GetActivePlugin()
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		if err != nil {
			t.Errorf("concurrent access error: %v", err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	swap(t, &State{ActivePlugin: "calendar"})

	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Load into fresh state
	current = nil
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if current.ActivePlugin != "calendar" {
		t.Errorf("round-trip ActivePlugin = %q, want calendar", current.ActivePlugin)
	}
}
