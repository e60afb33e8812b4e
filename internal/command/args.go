package command

import "github.com/JamesPrial/workboard/internal/board"

// BoardArgs selects the board view. An empty assignee means every assignee.
type BoardArgs struct {
	Assignee string `json:"assignee"`
	Keyword  string `json:"keyword"`
}

// TaskIDArgs names one task.
type TaskIDArgs struct {
	ID string `json:"id"`
}

// CreateTaskArgs carries the new task's fields. Status defaults to "todo".
type CreateTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// UpdateTaskArgs carries the fields to change; absent fields are kept.
type UpdateTaskArgs struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

// SetStatusArgs moves a task to another column.
type SetStatusArgs struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AddReportArgs carries a new progress report. Date and author are optional.
type AddReportArgs struct {
	TaskID string `json:"taskId"`
	Date   string `json:"date"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// NameArgs names a team member.
type NameArgs struct {
	Name string `json:"name"`
}

// BoardResult is the board view together with the roster context a renderer
// needs for its filter and identity pickers.
type BoardResult struct {
	Me      string   `json:"me"`
	Members []string `json:"members"`
	board.View
}

// MembersResult describes the roster.
type MembersResult struct {
	Members         []string `json:"members"`
	Me              string   `json:"me"`
	DefaultAssignee string   `json:"defaultAssignee"`
	Changed         bool     `json:"changed"`
}

// DeleteResult reports the outcome of delete_task.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
