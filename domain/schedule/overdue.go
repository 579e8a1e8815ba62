// Package schedule classifies tasks by deadline state. Every function takes
// an explicit now so results are deterministic and identical at every call
// site that displays deadline state.
package schedule

import (
	"time"

	"github.com/example/taskboard/domain/task"
)

// IsOverdue reports whether the task's deadline is strictly in the past.
// Status is deliberately ignored: an overdue task that was later closed
// stays flagged overdue for historical display.
func IsOverdue(t *task.Task, now time.Time) bool {
	return t.Deadline != nil && now.After(*t.Deadline)
}

// IsDueToday reports whether the deadline falls on the same calendar day as
// now (not a sliding 24h window) and the task is not yet completed. Due-today
// and overdue are mutually exclusive: a deadline cannot be today and strictly
// in the past at the same time.
func IsDueToday(t *task.Task, now time.Time) bool {
	if t.Deadline == nil || t.Status.IsCompleted() {
		return false
	}
	if IsOverdue(t, now) {
		return false
	}
	return sameDay(*t.Deadline, now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysSince returns the whole-day ceiling of now minus then, used by the
// stale-task filter. Never negative.
func DaysSince(then, now time.Time) int {
	d := now.Sub(then)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
