package slot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_ExternalWriteSignals(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "notes.json")
	f, err := NewFile(path, "notes", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := Watch(ctx, f, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"external"}]`), 0644))

	select {
	case _, ok := <-events:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event for external write")
	}

	cancel()
	for range events {
	}
}

func TestWatch_ExternalRemoveSignals(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "notes.json")
	f, err := NewFile(path, "notes", 0)
	require.NoError(t, err)
	require.NoError(t, f.Write([]byte(`[{"title":"kept"}]`)))

	ctx, cancel := context.WithCancel(context.Background())
	events, err := Watch(ctx, f, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	select {
	case _, ok := <-events:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event for external delete")
	}
	data, err := f.Read()
	require.NoError(t, err)
	require.Empty(t, data)

	cancel()
	for range events {
	}
}

func TestWatch_OwnWriteIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "notes.json")
	f, err := NewFile(path, "notes", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := Watch(ctx, f, nil)
	require.NoError(t, err)

	require.NoError(t, f.Write([]byte(`[]`)))

	select {
	case <-events:
		t.Fatal("own write should not signal")
	case <-time.After(4 * watchDebounce):
	}

	cancel()
	for range events {
	}
}
