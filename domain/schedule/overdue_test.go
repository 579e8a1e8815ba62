package schedule

import (
	"testing"
	"time"

	"github.com/example/taskboard/domain/task"
)

func taskWithDeadline(status task.Status, deadline *time.Time) *task.Task {
	return &task.Task{
		ID:       "t1",
		Title:    "report",
		Status:   status,
		Deadline: deadline,
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		status   task.Status
		deadline *time.Time
		want     bool
	}{
		{name: "deadline yesterday", status: task.StatusInProgress, deadline: &yesterday, want: true},
		{name: "deadline tomorrow", status: task.StatusInProgress, deadline: &tomorrow, want: false},
		{name: "no deadline", status: task.StatusInProgress, deadline: nil, want: false},
		{name: "closing does not clear lateness", status: task.StatusClosed, deadline: &yesterday, want: true},
		{name: "solved late task stays overdue", status: task.StatusSolved, deadline: &yesterday, want: true},
		{name: "deadline exactly now", status: task.StatusInProgress, deadline: &now, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOverdue(taskWithDeadline(tt.status, tt.deadline), now)
			if got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueToday(t *testing.T) {
	// 08:00 on the 15th; same-calendar-day comparison, not a 24h window.
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	tonight := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	yesterday := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	tomorrowMorning := time.Date(2024, 6, 16, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   task.Status
		deadline *time.Time
		want     bool
	}{
		{name: "due tonight", status: task.StatusInProgress, deadline: &tonight, want: true},
		{name: "due yesterday is overdue not due today", status: task.StatusInProgress, deadline: &yesterday, want: false},
		{name: "within 24h but tomorrow", status: task.StatusInProgress, deadline: &tomorrowMorning, want: false},
		{name: "no deadline", status: task.StatusInProgress, deadline: nil, want: false},
		{name: "solved task is not due", status: task.StatusSolved, deadline: &tonight, want: false},
		{name: "closed task is not due", status: task.StatusClosed, deadline: &tonight, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDueToday(taskWithDeadline(tt.status, tt.deadline), now)
			if got != tt.want {
				t.Errorf("IsDueToday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverdueAndDueTodayAreExclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	deadlines := []time.Time{
		now.Add(-48 * time.Hour),
		now.Add(-1 * time.Hour),
		now.Add(1 * time.Hour),
		now.Add(48 * time.Hour),
	}

	for _, d := range deadlines {
		deadline := d
		tsk := taskWithDeadline(task.StatusInProgress, &deadline)
		if IsOverdue(tsk, now) && IsDueToday(tsk, now) {
			t.Errorf("deadline %s: overdue and due-today must be mutually exclusive", d)
		}
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		then time.Time
		want int
	}{
		{name: "same instant", then: now, want: 0},
		{name: "an hour ago rounds up", then: now.Add(-time.Hour), want: 1},
		{name: "exactly one day", then: now.Add(-24 * time.Hour), want: 1},
		{name: "a day and a minute rounds up", then: now.Add(-24*time.Hour - time.Minute), want: 2},
		{name: "future never negative", then: now.Add(time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(tt.then, now); got != tt.want {
				t.Errorf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}
