package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/JamesPrial/workboard/internal/config"
)

func Test_LoadFrom_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		environ     func(dir string) map[string]string
		wantBackend string
		wantKey     string
		wantFile    func(dir string) string // expected JSONFile or SQLiteFile; nil skips
		wantErr     string
	}{
		{
			name:        "defaults to json in data dir",
			environ:     func(dir string) map[string]string { return map[string]string{"WORKBOARD_DATA_DIR": dir} },
			wantBackend: config.BackendJSON,
			wantKey:     "workmgr_v1",
			wantFile:    func(dir string) string { return filepath.Join(dir, "workboard.json") },
		},
		{
			name: "backend is trimmed and case insensitive",
			environ: func(dir string) map[string]string {
				return map[string]string{"WORKBOARD_DATA_DIR": dir, "WORKBOARD_STORAGE_BACKEND": "  SQLite "}
			},
			wantBackend: config.BackendSQLite,
			wantKey:     "workmgr_v1",
			wantFile:    func(dir string) string { return filepath.Join(dir, "workboard.db") },
		},
		{
			name: "custom storage key",
			environ: func(dir string) map[string]string {
				return map[string]string{"WORKBOARD_DATA_DIR": dir, "WORKBOARD_STORAGE_KEY": "team_b"}
			},
			wantBackend: config.BackendJSON,
			wantKey:     "team_b",
		},
		{
			name: "memory needs nothing else",
			environ: func(string) map[string]string {
				return map[string]string{"WORKBOARD_STORAGE_BACKEND": "memory"}
			},
			wantBackend: config.BackendMemory,
			wantKey:     "workmgr_v1",
		},
		{
			name: "postgres with url",
			environ: func(string) map[string]string {
				return map[string]string{
					"WORKBOARD_STORAGE_BACKEND": "postgres",
					"WORKBOARD_POSTGRES_URL":    "postgres://u:p@localhost:5432/db",
				}
			},
			wantBackend: config.BackendPostgres,
			wantKey:     "workmgr_v1",
		},
		{
			name: "postgres without url",
			environ: func(string) map[string]string {
				return map[string]string{"WORKBOARD_STORAGE_BACKEND": "postgres"}
			},
			wantErr: "WORKBOARD_POSTGRES_URL",
		},
		{
			name: "unknown backend",
			environ: func(dir string) map[string]string {
				return map[string]string{"WORKBOARD_DATA_DIR": dir, "WORKBOARD_STORAGE_BACKEND": "redis"}
			},
			wantErr: "unknown storage backend",
		},
		{
			name: "json path escaping data dir",
			environ: func(dir string) map[string]string {
				return map[string]string{"WORKBOARD_DATA_DIR": dir, "WORKBOARD_JSON_PATH": "../../evil.json"}
			},
			wantErr: "WORKBOARD_JSON_PATH",
		},
		{
			name: "sqlite path escaping data dir",
			environ: func(dir string) map[string]string {
				return map[string]string{
					"WORKBOARD_DATA_DIR":        dir,
					"WORKBOARD_STORAGE_BACKEND": "sqlite",
					"WORKBOARD_SQLITE_PATH":     "../outside.db",
				}
			},
			wantErr: "WORKBOARD_SQLITE_PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			cfg, err := config.LoadFrom(tt.environ(dir))

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadFrom() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() unexpected error: %v", err)
			}
			if cfg.Backend != tt.wantBackend {
				t.Errorf("Backend = %q, want %q", cfg.Backend, tt.wantBackend)
			}
			if cfg.StorageKey != tt.wantKey {
				t.Errorf("StorageKey = %q, want %q", cfg.StorageKey, tt.wantKey)
			}
			if tt.wantFile == nil {
				return
			}
			var got string
			if cfg.Backend == config.BackendSQLite {
				got, err = cfg.SQLiteFile()
			} else {
				got, err = cfg.JSONFile()
			}
			if err != nil {
				t.Fatalf("data file unexpected error: %v", err)
			}
			if got != tt.wantFile(dir) {
				t.Errorf("data file = %q, want %q", got, tt.wantFile(dir))
			}
		})
	}
}

func Test_LoadFrom_CustomJSONPathInsideDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.LoadFrom(map[string]string{
		"WORKBOARD_DATA_DIR":  dir,
		"WORKBOARD_JSON_PATH": "boards/team.json",
	})
	if err != nil {
		t.Fatalf("LoadFrom() unexpected error: %v", err)
	}
	got, err := cfg.JSONFile()
	if err != nil {
		t.Fatalf("JSONFile() unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join("boards", "team.json")) {
		t.Errorf("JSONFile() = %q, want .../boards/team.json", got)
	}
}

func Test_Config_DebugEnabled(t *testing.T) {
	t.Parallel()
	on, err := config.LoadFrom(map[string]string{"WORKBOARD_STORAGE_BACKEND": "memory", "DEBUG": "yes"})
	if err != nil {
		t.Fatalf("LoadFrom() unexpected error: %v", err)
	}
	off, err := config.LoadFrom(map[string]string{"WORKBOARD_STORAGE_BACKEND": "memory"})
	if err != nil {
		t.Fatalf("LoadFrom() unexpected error: %v", err)
	}
	if !on.DebugEnabled() || off.DebugEnabled() {
		t.Errorf("DebugEnabled() = %v/%v, want true/false", on.DebugEnabled(), off.DebugEnabled())
	}
}
