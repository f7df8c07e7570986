package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// SQLiteFileName is the database file inside the data directory.
const SQLiteFileName = "stockroom.db"

// createDocuments is the only table: one row per stored document.
const createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteBackend stores the snapshot as a single row of a SQLite table,
// keyed by types.StorageKey.
type SQLiteBackend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string
}

// NewSQLiteBackend creates a SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewSQLiteBackend() *SQLiteBackend {
	return &SQLiteBackend{}
}

// Attach opens (or creates) the database in DataDir and ensures the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *SQLiteBackend) Attach(config types.Config) error {
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

	path := filepath.Join(dataDir, SQLiteFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createDocuments); err != nil {
		db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	b.db = db
	b.config = config
	b.path = path
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, Load and Save return
// ErrDetached. Detach is idempotent.
func (b *SQLiteBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Load reads the document row. A missing row is an empty snapshot.
func (b *SQLiteBackend) Load() (*types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	var body string
	err := b.db.QueryRow("SELECT body FROM documents WHERE key = ?", types.StorageKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return types.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return decodeSnapshot(b.path, []byte(body)), nil
}

// Save upserts the document row.
func (b *SQLiteBackend) Save(snap *types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = b.db.Exec(
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		types.StorageKey, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	storeLog.Debug("snapshot_saved", slog.String("path", b.path), slog.Int("bytes", len(data)))
	return nil
}
