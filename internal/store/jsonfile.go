package store

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// JSONFileName is the document file inside the data directory.
const JSONFileName = types.StorageKey + ".json"

// JSONBackend stores the snapshot as one JSON document on disk.
type JSONBackend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	path     string
}

// NewJSONBackend creates a JSON backend. The backend is not attached; call
// Attach with a Config to initialize.
func NewJSONBackend() *JSONBackend {
	return &JSONBackend{}
}

// Attach validates config and creates DataDir if needed.
// Returns ErrAlreadyAttached if already attached.
func (b *JSONBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := dataDirOrDefault(config.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	b.config = config
	b.path = filepath.Join(dataDir, JSONFileName)
	b.attached = true
	return nil
}

// Detach releases the backend. Detach is idempotent.
func (b *JSONBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	return nil
}

// Path returns the document file path.
func (b *JSONBackend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Load reads the document. A missing file is an empty snapshot.
func (b *JSONBackend) Load() (*types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return types.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}
	return decodeSnapshot(b.path, data), nil
}

// Save replaces the document atomically.
func (b *JSONBackend) Save(snap *types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(b.path, data); err != nil {
		return err
	}
	storeLog.Debug("snapshot_saved", slog.String("path", b.path), slog.Int("bytes", len(data)))
	return nil
}

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern so readers see either the old or the new document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stockroom-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
