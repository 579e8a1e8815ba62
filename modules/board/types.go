package board

import (
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/example/taskboard/modules/tasks"
)

// BoardRequest asks for an actor's board view. Sort settings are per-request;
// the filter configuration comes from the actor's saved state.
type BoardRequest struct {
	ActorID   string         `json:"actor_id"`
	SortBy    view.SortKey   `json:"sort_by,omitempty"`
	Direction view.Direction `json:"direction,omitempty"`
}

// BoardColumn is one status column of the rendered board. Every status gets
// a column even when empty, so the board shape is stable.
type BoardColumn struct {
	Status task.Status          `json:"status"`
	Tasks  []tasks.TaskResponse `json:"tasks"`
	Count  int                  `json:"count"`
}

// BoardResponse is the grouped, sorted, filtered board.
type BoardResponse struct {
	Columns []BoardColumn     `json:"columns"`
	Filters view.FilterConfig `json:"filters"`
	Total   int               `json:"total"`
}
