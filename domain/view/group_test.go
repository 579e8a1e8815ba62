package view

import (
	"testing"

	"github.com/example/taskboard/domain/task"
)

func TestGroupRepresentsEmptyColumns(t *testing.T) {
	// An empty collection still yields every declared column.
	columns := Group(nil)
	if len(columns) != len(task.AllStatuses) {
		t.Fatalf("got %d columns, want %d", len(columns), len(task.AllStatuses))
	}
	for i, col := range columns {
		if col.Status != task.AllStatuses[i] {
			t.Errorf("column %d = %s, want %s", i, col.Status, task.AllStatuses[i])
		}
		if col.Tasks == nil || len(col.Tasks) != 0 {
			t.Errorf("column %s must be an empty bucket, got %v", col.Status, col.Tasks)
		}
	}
}

func TestGroupPartitions(t *testing.T) {
	in := []*task.Task{
		{ID: "t1", Status: task.StatusInProgress},
		{ID: "t2", Status: task.StatusClosed},
		{ID: "t3", Status: task.StatusInProgress},
		{ID: "t4", Status: task.StatusUnassigned},
	}

	columns := Group(in)

	total := 0
	seen := map[string]bool{}
	for _, col := range columns {
		for _, tsk := range col.Tasks {
			if tsk.Status != col.Status {
				t.Errorf("task %s in column %s", tsk.ID, col.Status)
			}
			if seen[tsk.ID] {
				t.Errorf("task %s appears in more than one column", tsk.ID)
			}
			seen[tsk.ID] = true
			total++
		}
	}
	if total != len(in) {
		t.Errorf("%d tasks grouped, want %d", total, len(in))
	}

	// Sorted order is preserved within a column.
	for _, col := range columns {
		if col.Status == task.StatusInProgress {
			if len(col.Tasks) != 2 || col.Tasks[0].ID != "t1" || col.Tasks[1].ID != "t3" {
				t.Errorf("in_progress column = %v, want [t1 t3]", ids(col.Tasks))
			}
		}
	}
}

func TestGroupDropsUnknownStatus(t *testing.T) {
	in := []*task.Task{
		{ID: "ok", Status: task.StatusAssigned},
		{ID: "junk", Status: task.Status("archived")},
	}

	columns := Group(in)
	for _, col := range columns {
		for _, tsk := range col.Tasks {
			if tsk.ID == "junk" {
				t.Error("unknown status must not land in any declared column")
			}
		}
	}
}
