// Package store persists the inventory snapshot as a single document.
// Two backends are available: a JSON file written atomically, and a SQLite
// database holding the document under a fixed key. Both fall back to an
// empty snapshot when the stored document is missing or unreadable.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var storeLog = logging.ForComponent(logging.CompStore)

// New returns an unattached backend for cfg.Backend.
func New(backend string) (types.Store, error) {
	switch backend {
	case types.BackendJSON:
		return NewJSONBackend(), nil
	case types.BackendSQLite:
		return NewSQLiteBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}

// Open creates the backend named in cfg and attaches it.
// The caller must Detach the returned store.
func Open(cfg types.Config) (types.Store, error) {
	s, err := New(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeSnapshot parses a stored document. Empty input yields an empty
// snapshot. A malformed document is logged and also yields an empty
// snapshot, so a corrupt file never blocks a session.
func decodeSnapshot(source string, data []byte) *types.Snapshot {
	if len(data) == 0 {
		return types.NewSnapshot()
	}
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		storeLog.Warn("snapshot_malformed",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return types.NewSnapshot()
	}
	snap.Normalize()
	storeLog.Debug("snapshot_loaded",
		slog.String("source", source),
		slog.Int("categories", len(snap.Categories)),
		slog.Int("fields", len(snap.Fields)),
		slog.Int("items", len(snap.Items)))
	return &snap
}

// encodeSnapshot renders snap as the stored document.
func encodeSnapshot(snap *types.Snapshot) ([]byte, error) {
	if snap == nil {
		snap = types.NewSnapshot()
	}
	cp := *snap
	cp.Normalize()
	data, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// dataDirOrDefault returns dir, or "." when dir is empty.
func dataDirOrDefault(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
