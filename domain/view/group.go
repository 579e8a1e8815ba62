package view

import (
	"github.com/example/taskboard/domain/task"
)

// Column is one named board bucket. Column keys are pre-declared from the
// status set, never derived from the tasks, so empty columns are always
// represented.
type Column struct {
	Status task.Status  `json:"status"`
	Tasks  []*task.Task `json:"tasks"`
}

// Group partitions an already-sorted collection into one column per status
// in the fixed display order. Every task lands in exactly one column; a task
// with an out-of-set status is dropped rather than invented a column.
func Group(tasks []*task.Task) []Column {
	byStatus := make(map[task.Status][]*task.Task, len(task.AllStatuses))
	for _, t := range tasks {
		if t.Status.IsValid() {
			byStatus[t.Status] = append(byStatus[t.Status], t)
		}
	}

	columns := make([]Column, 0, len(task.AllStatuses))
	for _, s := range task.AllStatuses {
		bucket := byStatus[s]
		if bucket == nil {
			bucket = []*task.Task{}
		}
		columns = append(columns, Column{Status: s, Tasks: bucket})
	}
	return columns
}
