package tasks

import (
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
)

// TaskResponse represents a task in service responses, with the deadline
// state computed on the way out — overdue is never stored.
type TaskResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        task.Status   `json:"status"`
	Priority      task.Priority `json:"priority"`
	CreatedBy     string        `json:"created_by"`
	ResponsibleID *string       `json:"responsible_id,omitempty"`
	TeamID        string        `json:"team_id"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
	IsOverdue     bool          `json:"is_overdue"`
	IsDueToday    bool          `json:"is_due_today"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	ActorID     string        `json:"actor_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    task.Priority `json:"priority,omitempty"`
	TeamID      string        `json:"team_id"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
}

// GetTaskRequest represents a get task request.
type GetTaskRequest struct {
	ActorID string `json:"actor_id"`
	ID      string `json:"id"`
}

// ListTasksRequest represents a list-by-scope request.
type ListTasksRequest struct {
	ActorID string     `json:"actor_id"`
	Scope   view.Scope `json:"scope,omitempty"`
}

// ListTasksResponse represents a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest represents a creator field edit. Nil fields are left
// alone. Snapshot carries the updated_at the caller last read.
type UpdateTaskRequest struct {
	ActorID       string         `json:"actor_id"`
	ID            string         `json:"id"`
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Priority      *task.Priority `json:"priority,omitempty"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	ClearDeadline bool           `json:"clear_deadline,omitempty"`
	Snapshot      *time.Time     `json:"snapshot,omitempty"`
}

// TransitionTaskRequest represents a direct status change request.
// Confirmed must be true to close a solved task.
type TransitionTaskRequest struct {
	ActorID   string      `json:"actor_id"`
	ID        string      `json:"id"`
	Target    task.Status `json:"target"`
	Confirmed bool        `json:"confirmed,omitempty"`
	Snapshot  *time.Time  `json:"snapshot,omitempty"`
}

// TakeTaskRequest represents a take (self-assign) request.
type TakeTaskRequest struct {
	ActorID  string     `json:"actor_id"`
	ID       string     `json:"id"`
	Snapshot *time.Time `json:"snapshot,omitempty"`
}

// ReleaseTaskRequest represents a release (self-unassign) request.
type ReleaseTaskRequest struct {
	ActorID  string     `json:"actor_id"`
	ID       string     `json:"id"`
	Snapshot *time.Time `json:"snapshot,omitempty"`
}

// AssignTaskRequest sets or clears the responsible. An empty ResponsibleID
// clears the assignment.
type AssignTaskRequest struct {
	ActorID       string     `json:"actor_id"`
	ID            string     `json:"id"`
	ResponsibleID string     `json:"responsible_id,omitempty"`
	Snapshot      *time.Time `json:"snapshot,omitempty"`
}

// DeleteTaskRequest represents an admin task deletion.
type DeleteTaskRequest struct {
	ActorID string `json:"actor_id"`
	ID      string `json:"id"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
