package storage_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/JamesPrial/workboard/internal/storage"
	_ "modernc.org/sqlite"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// newTestSQLiteBackend creates a SQLiteBackend in a directory managed by
// t.TempDir() and closes it when the test finishes.
func newTestSQLiteBackend(t *testing.T) (*storage.SQLiteBackend, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	b, err := storage.NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, dbPath
}

// openDirectDB opens a direct sql.DB connection for schema verification,
// bypassing the backend abstraction.
func openDirectDB(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open db directly: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func Test_NewSQLiteBackend_CreatesKVTable(t *testing.T) {
	t.Parallel()
	_, dbPath := newTestSQLiteBackend(t)

	db := openDirectDB(t, dbPath)
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_store'`).Scan(&name)
	if err != nil {
		t.Fatalf("kv_store table not found: %v", err)
	}
}

func Test_NewSQLiteBackend_UsesWAL(t *testing.T) {
	t.Parallel()
	_, dbPath := newTestSQLiteBackend(t)

	db := openDirectDB(t, dbPath)
	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func Test_NewSQLiteBackend_ReopenKeepsData(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	first, err := storage.NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Put("workmgr_v1", []byte(`{"me":"Jay"}`)); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	second, err := storage.NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })
	got, found, err := second.Get("workmgr_v1")
	if err != nil || !found || string(got) != `{"me":"Jay"}` {
		t.Errorf("Get() after reopen = %s, %v, %v", got, found, err)
	}
}

func Test_SQLiteBackend_PutKeepsOneRowPerKey(t *testing.T) {
	t.Parallel()
	b, dbPath := newTestSQLiteBackend(t)

	for i := 0; i < 3; i++ {
		if err := b.Put("workmgr_v1", []byte(`{}`)); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
	}

	db := openDirectDB(t, dbPath)
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func Test_SQLiteBackend_GetAfterClose(t *testing.T) {
	t.Parallel()
	b, err := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	_ = b.Close()

	if _, _, err := b.Get("k"); err == nil {
		t.Error("Get() on closed backend = nil error, want error")
	}
}
