// Package config loads the board's runtime configuration from environment
// variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/JamesPrial/workboard/internal/pathutil"
)

// Supported values for WORKBOARD_STORAGE_BACKEND.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const (
	defaultJSONFile   = "workboard.json"
	defaultSQLiteFile = "workboard.db"
	defaultStorageKey = "workmgr_v1"
)

// Config holds everything needed to open a board.
//
// Environment variables:
//   - WORKBOARD_STORAGE_BACKEND: "json" (default), "sqlite", "postgres" or "memory"
//   - WORKBOARD_DATA_DIR: directory for file backends (default: <user config dir>/workboard)
//   - WORKBOARD_JSON_PATH: JSON file path, relative to or inside the data dir
//   - WORKBOARD_SQLITE_PATH: SQLite file path, relative to or inside the data dir
//   - WORKBOARD_POSTGRES_URL: connection string, required for the postgres backend
//   - WORKBOARD_STORAGE_KEY: key the snapshot is stored under (default: workmgr_v1)
//   - DEBUG: any non-empty value enables debug logging
type Config struct {
	Backend     string `env:"WORKBOARD_STORAGE_BACKEND" envDefault:"json"`
	DataDir     string `env:"WORKBOARD_DATA_DIR"`
	JSONPath    string `env:"WORKBOARD_JSON_PATH"`
	SQLitePath  string `env:"WORKBOARD_SQLITE_PATH"`
	PostgresURL string `env:"WORKBOARD_POSTGRES_URL"`
	StorageKey  string `env:"WORKBOARD_STORAGE_KEY" envDefault:"workmgr_v1"`
	Debug       string `env:"DEBUG"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendJSON
	}
	cfg.StorageKey = strings.TrimSpace(cfg.StorageKey)
	if cfg.StorageKey == "" {
		cfg.StorageKey = defaultStorageKey
	}
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" && (cfg.Backend == BackendJSON || cfg.Backend == BackendSQLite) {
		dir, err := pathutil.DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combination of settings without touching storage.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON:
		if _, err := c.JSONFile(); err != nil {
			return err
		}
	case BackendSQLite:
		if _, err := c.SQLiteFile(); err != nil {
			return err
		}
	case BackendPostgres:
		if strings.TrimSpace(c.PostgresURL) == "" {
			return fmt.Errorf("WORKBOARD_POSTGRES_URL is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %q. Expected 'json', 'sqlite', 'postgres' or 'memory'", c.Backend)
	}
	return nil
}

// JSONFile returns the JSON backend's file path.
func (c Config) JSONFile() (string, error) {
	return c.dataFile(c.JSONPath, defaultJSONFile, "WORKBOARD_JSON_PATH")
}

// SQLiteFile returns the SQLite backend's database path.
func (c Config) SQLiteFile() (string, error) {
	return c.dataFile(c.SQLitePath, defaultSQLiteFile, "WORKBOARD_SQLITE_PATH")
}

func (c Config) dataFile(custom, fallback, envName string) (string, error) {
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return filepath.Join(c.DataDir, fallback), nil
	}
	p, err := pathutil.ResolveSafePath(c.DataDir, custom)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", envName, err)
	}
	return p, nil
}

// DebugEnabled reports whether DEBUG is set.
func (c Config) DebugEnabled() bool {
	return c.Debug != ""
}
