package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the CLI against a temp notes directory and returns stdout.
func execute(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()
	configPath, debugFlag, ephemeral = "", false, false
	addColor, listJSON, exportFormat = "", false, "json"
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "notes:\n  backend: " + backend + "\n  path: " + filepath.Join(dir, "data") + "\n  watch: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestAddListRemove(t *testing.T) {
	for _, backend := range []string{"file", "bolt", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfgFile := writeConfig(t, backend)

			_, err := execute(t, cfgFile, "add", "Groceries", "milk", "and", "eggs", "--color", "yellow")
			require.NoError(t, err)
			_, err = execute(t, cfgFile, "add", "Work", "ship it")
			require.NoError(t, err)

			out, err := execute(t, cfgFile, "list")
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 2)
			assert.True(t, strings.HasPrefix(lines[0], "1. [Default] Work"), lines[0])
			assert.True(t, strings.HasPrefix(lines[1], "2. [Yellow] Groceries"), lines[1])

			out, err = execute(t, cfgFile, "rm", "1")
			require.NoError(t, err)
			assert.Contains(t, out, `Deleted "Work"`)

			out, err = execute(t, cfgFile, "list")
			require.NoError(t, err)
			assert.Contains(t, out, "Groceries")
			assert.NotContains(t, out, "Work")
		})
	}
}

func TestAddRejectsBlankContent(t *testing.T) {
	cfgFile := writeConfig(t, "file")
	_, err := execute(t, cfgFile, "add", "Title", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content is required")

	_, err = execute(t, cfgFile, "add", "Title", "body", "--color", "orange")
	require.Error(t, err)
}

func TestRemoveUnknown(t *testing.T) {
	cfgFile := writeConfig(t, "file")
	_, err := execute(t, cfgFile, "rm", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note not found")
}

func TestExportYAML(t *testing.T) {
	cfgFile := writeConfig(t, "file")
	_, err := execute(t, cfgFile, "add", "Plan", "line one\nline two", "-c", "Blue")
	require.NoError(t, err)

	out, err := execute(t, cfgFile, "export", "--format", "yaml")
	require.NoError(t, err)

	var got []exportNote
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Plan", got[0].Title)
	assert.Equal(t, "#cfe8ff", got[0].Color)
	assert.NotEmpty(t, got[0].ID)

	_, err = execute(t, cfgFile, "export", "--format", "xml")
	require.Error(t, err)
}

func TestEphemeralDoesNotPersist(t *testing.T) {
	cfgFile := writeConfig(t, "file")
	_, err := execute(t, cfgFile, "--ephemeral", "add", "Temp", "gone soon")
	require.NoError(t, err)

	out, err := execute(t, cfgFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes yet.")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "/nonexistent/config.json", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "notedeck version "))
	assert.Equal(t, "v1.2.3", effectiveVersion("v1.2.3"))
}

func TestUnreadableSlotIsNotOverwritten(t *testing.T) {
	cfgFile := writeConfig(t, "file")
	// A directory where the notes file belongs makes every read fail.
	blocker := filepath.Join(filepath.Dir(cfgFile), "data", "notes.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "keep"), 0755))

	_, err := execute(t, cfgFile, "add", "Groceries", "milk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load notes")

	_, err = execute(t, cfgFile, "list")
	require.Error(t, err)

	assert.DirExists(t, filepath.Join(blocker, "keep"))
}
