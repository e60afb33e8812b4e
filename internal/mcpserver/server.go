package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/workboard/internal/board"
)

// Version is reported to MCP clients during initialization.
var Version = "1.0.0"

const instructions = `Workboard is a small team task board.
Tasks move through four columns: todo, in_progress, review, done.
Use "members" to learn the roster and current identity before creating tasks;
assignees must be roster members. Use "board" to see tasks grouped by column,
optionally filtered by assignee or keyword. Progress notes are added with
"add_report" and are listed most recent first.`

// NewServer creates and configures a new MCP server with every board tool
// registered against store.
func NewServer(store *board.Store) (*server.MCPServer, error) {
	h := NewHandlers(store)

	s := server.NewMCPServer(
		"workboard",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	// Read tools
	s.AddTool(boardTool(), h.HandleBoard)
	s.AddTool(getTaskTool(), h.HandleGetTask)
	s.AddTool(membersTool(), h.HandleMembers)

	// Task mutations
	s.AddTool(createTaskTool(), h.HandleCreateTask)
	s.AddTool(updateTaskTool(), h.HandleUpdateTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)
	s.AddTool(setStatusTool(), h.HandleSetStatus)
	s.AddTool(addReportTool(), h.HandleAddReport)

	// Roster
	s.AddTool(addMemberTool(), h.HandleAddMember)
	s.AddTool(setIdentityTool(), h.HandleSetIdentity)

	return s, nil
}
