// Package main implements the MCP server for the workboard.
//
// This server exposes the team board (tasks, reports, roster) as MCP tools.
// It communicates via stdio JSON-RPC (Model Context Protocol) and uses the
// same WORKBOARD_* environment variables as the workboard CLI.
package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/workboard/internal/config"
	"github.com/JamesPrial/workboard/internal/mcpserver"
	"github.com/JamesPrial/workboard/internal/storage"
)

func run() int {
	errLogger := log.New(os.Stderr, "[workboard-mcp] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		errLogger.Printf("Invalid configuration: %v", err)
		return 1
	}

	store, closeStore := storage.OpenBoard(cfg, errLogger)
	defer closeStore()

	srv, err := mcpserver.NewServer(store)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
