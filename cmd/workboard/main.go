// Package main implements the workboard command-line tool.
//
// This program reads one command envelope from stdin (JSON format), applies it
// to the team board and prints the JSON result to stdout:
//
//	{"op": "create_task", "args": {"title": "Design banner", "assignee": "Ellie"}}
//
// Supported ops: board, get_task, create_task, update_task, delete_task,
// set_status, add_report, add_member, set_identity, members.
//
// Exit codes:
//   - 0: Success (result printed)
//   - 1: Error (invalid input, invalid configuration, rejected command)
//
// Environment variables:
//   - WORKBOARD_STORAGE_BACKEND: Optional. "json" (default), "sqlite", "postgres" or "memory".
//   - WORKBOARD_DATA_DIR: Optional. Directory for the file backends.
//   - WORKBOARD_JSON_PATH: Optional. Custom path for the JSON file.
//   - WORKBOARD_SQLITE_PATH: Optional. Custom path for the SQLite database.
//   - WORKBOARD_POSTGRES_URL: Required for the postgres backend.
//   - WORKBOARD_STORAGE_KEY: Optional. Storage key (default "workmgr_v1").
//   - DEBUG: Optional. Enable debug logging to stderr.
//
// A storage backend that cannot be opened is not fatal: the command runs
// against an in-memory board and a warning is logged.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/JamesPrial/workboard/internal/command"
	"github.com/JamesPrial/workboard/internal/config"
	"github.com/JamesPrial/workboard/internal/storage"
)

// run contains the main logic, returning an exit code.
//
// Accepts the standard streams as parameters to enable testing without
// modifying global state.
//
// Process flow:
//  1. Read and parse the command envelope from stdin
//  2. Load configuration from the environment
//  3. Open the board on the configured backend
//  4. Apply the command
//  5. Print the result as indented JSON and return 0
//
// Error handling:
//   - All errors are printed to stderr with "Error: " prefix
//   - Returns exit code 1 on any error
func run(stdin io.Reader, stdout, stderr io.Writer) int {
	// Step 1: Read and parse the command envelope
	cmd, err := command.ReadCommand(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Step 2: Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := log.New(stderr, "[workboard] ", log.LstdFlags)
	if cfg.DebugEnabled() {
		logger.Printf("op=%s backend=%s key=%s", cmd.Op, cfg.Backend, cfg.StorageKey)
	}

	// Step 3: Open the board
	store, closeStore := storage.OpenBoard(cfg, logger)
	defer closeStore()

	// Step 4: Apply the command
	result, err := command.Run(store, cmd)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.DebugEnabled() && !store.Durable() {
		logger.Printf("changes were not persisted: %v", store.PersistErr())
	}

	// Step 5: Print the result
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}
