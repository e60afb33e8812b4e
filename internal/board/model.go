// Package board implements the task-and-report board: the domain model, the
// authoritative in-memory Store with its mutations, and the derived views the
// presentation surfaces render.
//
// The Store never touches storage directly. Every mutation ends with a commit
// that hands a full Snapshot to a Persistence implementation.
package board

import (
	"fmt"
	"strings"
	"time"
)

// Report is an immutable, dated progress note attached to a task.
type Report struct {
	ID     string `json:"id"`
	Date   Date   `json:"date"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Task is a unit of work with an assignee, a status and a report history.
//
// Reports are ordered most recent first.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Assignee    string    `json:"assignee"`
	Creator     string    `json:"creator"`
	DueDate     Date      `json:"dueDate,omitempty"`
	Status      Status    `json:"status"`
	Reports     []Report  `json:"reports"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// clone returns a copy of t that shares no slices with it.
func (t Task) clone() Task {
	reports := make([]Report, len(t.Reports))
	copy(reports, t.Reports)
	t.Reports = reports
	return t
}

// Draft carries the user-supplied fields for a new task.
type Draft struct {
	Title       string
	Description string
	Assignee    string
	DueDate     Date
	Status      Status
}

// Patch carries the fields to change on an existing task. Nil fields are left
// untouched.
type Patch struct {
	Title       *string
	Description *string
	Assignee    *string
	DueDate     *Date
	Status      *Status
}

// ReportDraft carries the user-supplied fields for a new report. Empty Date and
// Author fall back to today and the current identity.
type ReportDraft struct {
	Date   Date
	Author string
	Text   string
}

// Snapshot is the complete persisted state of a board.
type Snapshot struct {
	Members []string `json:"members"`
	Me      string   `json:"me"`
	Tasks   []Task   `json:"tasks"`
}

// Validate checks the structural invariants a loaded snapshot must satisfy.
// Missing collections and identity are tolerated; the Store fills them in.
func (s Snapshot) Validate() error {
	for i, t := range s.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task %d has no id", ErrValidation, i)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %s has no title", ErrValidation, t.ID)
		}
		if !t.Status.Valid() {
			return fmt.Errorf("%w: task %s has unknown status %q", ErrValidation, t.ID, t.Status)
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			return fmt.Errorf("%w: task %s updated before it was created", ErrValidation, t.ID)
		}
		if !t.DueDate.IsZero() {
			if _, err := ParseDate(string(t.DueDate)); err != nil {
				return fmt.Errorf("task %s due date: %w", t.ID, err)
			}
		}
		for _, r := range t.Reports {
			if strings.TrimSpace(r.Text) == "" {
				return fmt.Errorf("%w: task %s has a report without text", ErrValidation, t.ID)
			}
			if !r.Date.IsZero() {
				if _, err := ParseDate(string(r.Date)); err != nil {
					return fmt.Errorf("task %s report %s: %w", t.ID, r.ID, err)
				}
			}
		}
	}
	return nil
}
