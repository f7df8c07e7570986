package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsExternalChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, JSONFileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, writeFileAtomic(path, []byte(`{"categories":[]}`)))

	select {
	case <-w.Reload():
	case <-time.After(3 * time.Second):
		t.Fatal("expected reload signal")
	}
}

func TestWatcherCoalescesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, JSONFileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(`{"items":[]}`), 0o644))
	}

	select {
	case <-w.Reload():
	case <-time.After(3 * time.Second):
		t.Fatal("expected reload signal")
	}
	select {
	case <-w.Reload():
		t.Fatal("a burst of writes must signal once")
	case <-time.After(debounceDelay + 300*time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, JSONFileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Reload():
		t.Fatal("unrelated file must not trigger a reload")
	case <-time.After(debounceDelay + 300*time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFileName)
	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
