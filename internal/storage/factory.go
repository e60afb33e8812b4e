package storage

import (
	"fmt"
	"log"

	"github.com/JamesPrial/workboard/internal/board"
	"github.com/JamesPrial/workboard/internal/config"
)

// NewBackend opens the backend selected by cfg.
//
// cfg is expected to have passed config.Validate; the errors returned here are
// I/O failures (unwritable directory, unreachable database).
func NewBackend(cfg config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		path, err := cfg.JSONFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON path: %w", err)
		}
		return NewJSONBackend(path), nil

	case config.BackendSQLite:
		path, err := cfg.SQLiteFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		return NewSQLiteBackend(path)

	case config.BackendPostgres:
		return NewPostgresBackend(cfg.PostgresURL)

	case config.BackendMemory:
		return NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// OpenBoard opens the configured backend and loads the board from it.
//
// When the backend cannot be opened the failure is logged and the board opens
// in memory-only mode; the board is always usable. The returned close function
// releases the backend and is safe to call in either case.
func OpenBoard(cfg config.Config, logger *log.Logger) (*board.Store, func()) {
	backend, err := NewBackend(cfg)
	if err != nil {
		logger.Printf("storage backend %q unavailable, continuing in memory only: %v", cfg.Backend, err)
		return board.Open(nil, board.WithLogger(logger)), func() {}
	}

	snapshots := NewSnapshotStore(backend, cfg.StorageKey, logger)
	store := board.Open(snapshots, board.WithLogger(logger))
	return store, func() {
		if err := backend.Close(); err != nil {
			logger.Printf("failed to close storage backend: %v", err)
		}
	}
}
