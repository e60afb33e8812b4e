// Package mcpserver exposes the task board as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/workboard/internal/board"
	"github.com/JamesPrial/workboard/internal/command"
)

func statusValues() []string {
	out := make([]string, 0, 4)
	for _, s := range board.Statuses() {
		out = append(out, string(s))
	}
	return out
}

// boardTool returns a tool definition for reading the grouped board.
func boardTool() mcp.Tool {
	return mcp.NewTool(command.OpBoard,
		mcp.WithDescription("Show the board: tasks grouped into the todo, in_progress, review and done columns, newest first, with per-column counts."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("assignee",
			mcp.Description("Only show tasks assigned to this member. Omit or use 'all' for everyone.")),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive text matched against title, description and assignee")),
	)
}

// getTaskTool returns a tool definition for reading one task.
func getTaskTool() mcp.Tool {
	return mcp.NewTool(command.OpGetTask,
		mcp.WithDescription("Get one task with its full report history."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id")),
	)
}

// membersTool returns a tool definition for reading the roster.
func membersTool() mcp.Tool {
	return mcp.NewTool(command.OpMembers,
		mcp.WithDescription("List team members, the current identity and the default assignee for new tasks."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// createTaskTool returns a tool definition for creating a task.
func createTaskTool() mcp.Tool {
	return mcp.NewTool(command.OpCreateTask,
		mcp.WithDescription("Create a task. It is placed first on the board and created by the current identity."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short task title")),
		mcp.WithString("assignee",
			mcp.Required(),
			mcp.Description("Team member responsible for the task")),
		mcp.WithString("description",
			mcp.Description("Longer free-text description")),
		mcp.WithString("dueDate",
			mcp.Description("Due date as YYYY-MM-DD")),
		mcp.WithString("status",
			mcp.Enum(statusValues()...),
			mcp.Description("Initial column (defaults to todo)")),
	)
}

// updateTaskTool returns a tool definition for editing a task.
func updateTaskTool() mcp.Tool {
	return mcp.NewTool(command.OpUpdateTask,
		mcp.WithDescription("Edit a task. Only the fields provided are changed; pass an empty dueDate to clear it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id")),
		mcp.WithString("title",
			mcp.Description("New title")),
		mcp.WithString("assignee",
			mcp.Description("New assignee, must be a team member")),
		mcp.WithString("description",
			mcp.Description("New description")),
		mcp.WithString("dueDate",
			mcp.Description("New due date as YYYY-MM-DD, or empty to clear")),
		mcp.WithString("status",
			mcp.Enum(statusValues()...),
			mcp.Description("New column")),
	)
}

// deleteTaskTool returns a tool definition for deleting a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool(command.OpDeleteTask,
		mcp.WithDescription("Delete a task and its reports. Deleting an unknown id does nothing."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id")),
	)
}

// setStatusTool returns a tool definition for moving a task between columns.
func setStatusTool() mcp.Tool {
	return mcp.NewTool(command.OpSetStatus,
		mcp.WithDescription("Move a task to another column. Any column may follow any other."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id")),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Enum(statusValues()...),
			mcp.Description("Target column")),
	)
}

// addReportTool returns a tool definition for adding a progress report.
func addReportTool() mcp.Tool {
	return mcp.NewTool(command.OpAddReport,
		mcp.WithDescription("Add a dated progress report to a task. Reports are listed most recent first."),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("Task id")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Report text")),
		mcp.WithString("date",
			mcp.Description("Report date as YYYY-MM-DD (defaults to today)")),
		mcp.WithString("author",
			mcp.Description("Report author (defaults to the current identity)")),
	)
}

// addMemberTool returns a tool definition for growing the roster.
func addMemberTool() mcp.Tool {
	return mcp.NewTool(command.OpAddMember,
		mcp.WithDescription("Add a team member. Blank and duplicate names are ignored."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name")),
	)
}

// setIdentityTool returns a tool definition for switching the current identity.
func setIdentityTool() mcp.Tool {
	return mcp.NewTool(command.OpSetIdentity,
		mcp.WithDescription("Act as another team member. New tasks and reports are attributed to this identity."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name, must be on the roster")),
	)
}
