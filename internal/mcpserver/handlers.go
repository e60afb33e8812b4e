package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/workboard/internal/board"
	"github.com/JamesPrial/workboard/internal/command"
)

// Handlers serves the board tools from one shared store.
type Handlers struct {
	store *board.Store
}

// NewHandlers creates tool handlers backed by store.
func NewHandlers(store *board.Store) *Handlers {
	return &Handlers{store: store}
}

// dispatch forwards the tool arguments to the command layer and renders the
// result as indented JSON text. Command failures become tool errors, never Go
// errors, so the client sees the message.
func (h *Handlers) dispatch(op string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if args := request.GetArguments(); args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		raw = data
	}

	result, err := command.Execute(h.store, op, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// HandleBoard returns the grouped board view.
func (h *Handlers) HandleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpBoard, request)
}

// HandleGetTask returns one task.
func (h *Handlers) HandleGetTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpGetTask, request)
}

// HandleMembers returns the roster.
func (h *Handlers) HandleMembers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpMembers, request)
}

// HandleCreateTask creates a task.
func (h *Handlers) HandleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpCreateTask, request)
}

// HandleUpdateTask edits a task.
func (h *Handlers) HandleUpdateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpUpdateTask, request)
}

// HandleDeleteTask deletes a task.
func (h *Handlers) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpDeleteTask, request)
}

// HandleSetStatus moves a task to another column.
func (h *Handlers) HandleSetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpSetStatus, request)
}

// HandleAddReport adds a progress report.
func (h *Handlers) HandleAddReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpAddReport, request)
}

// HandleAddMember adds a team member.
func (h *Handlers) HandleAddMember(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpAddMember, request)
}

// HandleSetIdentity switches the current identity.
func (h *Handlers) HandleSetIdentity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(command.OpSetIdentity, request)
}
