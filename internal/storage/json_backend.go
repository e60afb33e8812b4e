package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONBackend implements Backend using a single JSON file.
//
// The file holds one object mapping keys to their raw JSON values. Writes go
// through a temporary file and os.Rename so the file is never half-written.
type JSONBackend struct {
	// Path is the absolute path to the JSON file.
	Path string

	mu sync.Mutex
}

// NewJSONBackend creates a JSONBackend for the given file path.
//
// Parent directories are created on the first Put.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{Path: path}
}

// readAll loads the key map from disk.
//
// A missing, empty or corrupt file yields an empty map: the snapshot adapter
// treats that as "nothing stored" and the board falls back to defaults. A file
// that exists but cannot be read is an error, so the caller never mistakes it
// for an empty store and writes over it.
func (b *JSONBackend) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.Path, err)
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return make(map[string]json.RawMessage), nil
	}
	return values, nil
}

// Get returns the raw value stored under key.
func (b *JSONBackend) Get(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	values, err := b.readAll()
	if err != nil {
		return nil, false, err
	}
	value, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Put rewrites the file with key set to value.
//
// value must itself be valid JSON since it is embedded verbatim. Writes use
// 2-space indentation and a trailing newline.
func (b *JSONBackend) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for key %q is not valid JSON", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	values, err := b.readAll()
	if err != nil {
		return fmt.Errorf("refusing to overwrite unreadable file: %w", err)
	}
	values[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, b.Path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (b *JSONBackend) Close() error {
	return nil
}
