// Package command decodes JSON command envelopes and applies them to a board.
//
// Both surfaces share this dispatcher: the CLI reads one envelope from stdin,
// the MCP server builds the arguments from a tool call. Neither holds state of
// its own; everything goes through the board.Store.
package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JamesPrial/workboard/internal/board"
)

// Supported operations.
const (
	OpBoard       = "board"
	OpGetTask     = "get_task"
	OpCreateTask  = "create_task"
	OpUpdateTask  = "update_task"
	OpDeleteTask  = "delete_task"
	OpSetStatus   = "set_status"
	OpAddReport   = "add_report"
	OpAddMember   = "add_member"
	OpSetIdentity = "set_identity"
	OpMembers     = "members"
)

var ops = []string{
	OpBoard, OpGetTask, OpCreateTask, OpUpdateTask, OpDeleteTask,
	OpSetStatus, OpAddReport, OpAddMember, OpSetIdentity, OpMembers,
}

// Ops returns every supported operation name.
func Ops() []string {
	out := make([]string, len(ops))
	copy(out, ops)
	return out
}

// ErrUnknownOp is returned for an operation name that is not supported.
var ErrUnknownOp = errors.New("unknown op")

// Command is the envelope read from stdin: {"op": "...", "args": {...}}.
type Command struct {
	// Op names the operation, e.g. "create_task".
	Op string `json:"op"`

	// Args is the raw JSON object of operation arguments. It may be absent.
	Args json.RawMessage `json:"args"`
}

// ReadCommand reads and parses one command envelope from r.
//
// Returns an error if the JSON is malformed or the op is missing. Whether the
// op is supported is decided later by Execute.
func ReadCommand(r io.Reader) (*Command, error) {
	var cmd Command

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cmd); err != nil {
		return nil, fmt.Errorf("failed to decode command: %w", err)
	}

	cmd.Op = strings.TrimSpace(cmd.Op)
	if cmd.Op == "" {
		return nil, fmt.Errorf("failed to decode command: %w: op is required", board.ErrValidation)
	}
	return &cmd, nil
}

// decodeArgs unmarshals raw into dst. Absent or null arguments leave dst at
// its zero value; unknown fields are rejected so typos do not pass silently.
func decodeArgs(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid args: %v", board.ErrValidation, err)
	}
	return nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", board.ErrValidation, name)
	}
	return nil
}
