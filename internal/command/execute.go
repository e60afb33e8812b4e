package command

import (
	"encoding/json"
	"fmt"

	"github.com/JamesPrial/workboard/internal/board"
)

type handler func(s *board.Store, args json.RawMessage) (any, error)

var handlers = map[string]handler{
	OpBoard:       boardOp,
	OpGetTask:     getTask,
	OpCreateTask:  createTask,
	OpUpdateTask:  updateTask,
	OpDeleteTask:  deleteTask,
	OpSetStatus:   setStatus,
	OpAddReport:   addReport,
	OpAddMember:   addMember,
	OpSetIdentity: setIdentity,
	OpMembers:     members,
}

// Execute applies op with its JSON arguments to s and returns a JSON-ready
// result.
//
// Errors wrap ErrUnknownOp, board.ErrValidation or board.ErrNotFound.
// Persistence failures never surface here; the store degrades to memory-only.
func Execute(s *board.Store, op string, args json.RawMessage) (any, error) {
	h, ok := handlers[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return h(s, args)
}

// Run executes cmd against s.
func Run(s *board.Store, cmd *Command) (any, error) {
	return Execute(s, cmd.Op, cmd.Args)
}

func boardOp(s *board.Store, raw json.RawMessage) (any, error) {
	var a BoardArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if a.Assignee == "" {
		a.Assignee = board.AllAssignees
	}
	return BoardResult{
		Me:      s.CurrentIdentity(),
		Members: s.Members(),
		View:    s.Board(a.Assignee, a.Keyword),
	}, nil
}

func getTask(s *board.Store, raw json.RawMessage) (any, error) {
	var a TaskIDArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if err := required("id", a.ID); err != nil {
		return nil, err
	}
	return s.Task(a.ID)
}

func createTask(s *board.Store, raw json.RawMessage) (any, error) {
	var a CreateTaskArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	d := board.Draft{
		Title:       a.Title,
		Description: a.Description,
		Assignee:    a.Assignee,
		DueDate:     board.Date(a.DueDate),
		Status:      board.Status(a.Status),
	}
	return s.CreateTask(d, "")
}

func updateTask(s *board.Store, raw json.RawMessage) (any, error) {
	var a UpdateTaskArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if err := required("id", a.ID); err != nil {
		return nil, err
	}
	p := board.Patch{
		Title:       a.Title,
		Description: a.Description,
		Assignee:    a.Assignee,
	}
	if a.DueDate != nil {
		d := board.Date(*a.DueDate)
		p.DueDate = &d
	}
	if a.Status != nil {
		st, err := board.ParseStatus(*a.Status)
		if err != nil {
			return nil, err
		}
		p.Status = &st
	}
	return s.UpdateTask(a.ID, p)
}

func deleteTask(s *board.Store, raw json.RawMessage) (any, error) {
	var a TaskIDArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if err := required("id", a.ID); err != nil {
		return nil, err
	}
	return DeleteResult{ID: a.ID, Deleted: s.DeleteTask(a.ID)}, nil
}

func setStatus(s *board.Store, raw json.RawMessage) (any, error) {
	var a SetStatusArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if err := required("id", a.ID); err != nil {
		return nil, err
	}
	st, err := board.ParseStatus(a.Status)
	if err != nil {
		return nil, err
	}
	return s.SetStatus(a.ID, st)
}

func addReport(s *board.Store, raw json.RawMessage) (any, error) {
	var a AddReportArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	if err := required("taskId", a.TaskID); err != nil {
		return nil, err
	}
	return s.AddReport(a.TaskID, board.ReportDraft{
		Date:   board.Date(a.Date),
		Author: a.Author,
		Text:   a.Text,
	})
}

func addMember(s *board.Store, raw json.RawMessage) (any, error) {
	var a NameArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	changed := s.AddMember(a.Name)
	return roster(s, changed), nil
}

func setIdentity(s *board.Store, raw json.RawMessage) (any, error) {
	var a NameArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	changed, err := s.SetIdentity(a.Name)
	if err != nil {
		return nil, err
	}
	return roster(s, changed), nil
}

func members(s *board.Store, raw json.RawMessage) (any, error) {
	var a struct{}
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return roster(s, false), nil
}

func roster(s *board.Store, changed bool) MembersResult {
	return MembersResult{
		Members:         s.Members(),
		Me:              s.CurrentIdentity(),
		DefaultAssignee: s.DefaultAssignee(),
		Changed:         changed,
	}
}
