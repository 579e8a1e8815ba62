package view

import (
	"sort"

	"github.com/example/taskboard/domain/task"
)

// SortKey selects the comparator for ordering a task collection.
type SortKey string

const (
	// SortByCreated orders by creation time.
	SortByCreated SortKey = "created_at"
	// SortByUpdated orders by last update time.
	SortByUpdated SortKey = "updated_at"
	// SortByPriority orders by priority weight (low=1 .. critical=4).
	SortByPriority SortKey = "priority"
	// SortByDeadline orders by deadline; a nil deadline weighs 0, so it
	// sorts as earliest and lands last under descending order.
	SortByDeadline SortKey = "deadline"
)

// Direction is the sort direction, applied uniformly to the comparator.
type Direction string

const (
	// Ascending sorts smallest first.
	Ascending Direction = "asc"
	// Descending sorts largest first.
	Descending Direction = "desc"
)

// Sort returns a new slice ordered by the given key and direction. The input
// is never reordered; ties keep their incoming order.
func Sort(tasks []*task.Task, key SortKey, dir Direction) []*task.Task {
	out := make([]*task.Task, len(tasks))
	copy(out, tasks)

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b *task.Task) bool {
	switch key {
	case SortByUpdated:
		return func(a, b *task.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortByPriority:
		return func(a, b *task.Task) bool { return a.Priority.Weight() < b.Priority.Weight() }
	case SortByDeadline:
		return func(a, b *task.Task) bool { return deadlineWeight(a) < deadlineWeight(b) }
	default:
		return func(a, b *task.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

func deadlineWeight(t *task.Task) int64 {
	if t.Deadline == nil {
		return 0
	}
	return t.Deadline.UnixMilli()
}
