// Package view turns a flat task collection into filtered, sorted, grouped
// board columns. The pipelines are pure: they never mutate their input and
// never fail on malformed filter fields — a broken filter degrades to a
// skipped predicate instead of hiding every task.
package view

import (
	"strings"
	"time"

	"github.com/example/taskboard/domain/schedule"
	"github.com/example/taskboard/domain/task"
)

// DateField selects which timestamp a date range applies to.
type DateField string

const (
	// DateFieldCreated filters on created_at.
	DateFieldCreated DateField = "created"
	// DateFieldUpdated filters on updated_at.
	DateFieldUpdated DateField = "updated"
	// DateFieldDeadline filters on the deadline.
	DateFieldDeadline DateField = "deadline"
)

// Bucket selects the deadline-state slice of the board.
type Bucket string

const (
	// BucketAll applies no deadline predicate.
	BucketAll Bucket = "all"
	// BucketDueToday keeps tasks due on the current calendar day.
	BucketDueToday Bucket = "due_today"
	// BucketOverdue keeps tasks whose deadline is strictly in the past.
	BucketOverdue Bucket = "overdue"
)

// Scope selects which task collection is fetched for the view. Scope is
// enforced by the repository fetch, not by the per-task policy.
type Scope string

const (
	// ScopeOwnTeam shows tasks belonging to the actor's teams.
	ScopeOwnTeam Scope = "own_team"
	// ScopeAssignedToMe shows tasks the actor is responsible for.
	ScopeAssignedToMe Scope = "assigned_to_me"
	// ScopeAllTasks shows everything; restricted to admin and manager.
	ScopeAllTasks Scope = "all_tasks"
)

// FilterConfig is the persisted value object driving the filter pipeline.
// Zero values mean "predicate not applied".
type FilterConfig struct {
	Query        string        `json:"query,omitempty"`
	TeamID       string        `json:"team_id,omitempty"`
	DateField    DateField     `json:"date_field,omitempty"`
	DateFrom     *time.Time    `json:"date_from,omitempty"`
	DateTo       *time.Time    `json:"date_to,omitempty"`
	Bucket       Bucket        `json:"bucket,omitempty"`
	MinStaleDays int           `json:"min_stale_days,omitempty"`
	Priority     task.Priority `json:"priority,omitempty"`
	Scope        Scope         `json:"scope,omitempty"`
}

// DefaultFilterConfig is the documented fallback when no persisted
// configuration exists: own team, all buckets, nothing else set.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Bucket: BucketAll,
		Scope:  ScopeOwnTeam,
	}
}

// Normalize fills unset selectors with their defaults so a partially decoded
// configuration still behaves predictably.
func (c FilterConfig) Normalize() FilterConfig {
	if c.Bucket == "" {
		c.Bucket = BucketAll
	}
	if c.Scope == "" {
		c.Scope = ScopeOwnTeam
	}
	return c
}

// Apply runs every active predicate as a logical AND over the collection and
// returns a new slice referencing the same task entities.
func (c FilterConfig) Apply(tasks []*task.Task, now time.Time) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.matches(t, now) {
			out = append(out, t)
		}
	}
	return out
}

func (c FilterConfig) matches(t *task.Task, now time.Time) bool {
	if c.Query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(c.Query)) {
		return false
	}
	if c.TeamID != "" && t.TeamID != c.TeamID {
		return false
	}
	if !c.matchesDateRange(t) {
		return false
	}
	if !c.matchesBucket(t, now) {
		return false
	}
	if c.MinStaleDays > 0 && schedule.DaysSince(t.UpdatedAt, now) < c.MinStaleDays {
		return false
	}
	if c.Priority != "" && c.Priority.IsValid() && t.Priority != c.Priority {
		return false
	}
	return true
}

func (c FilterConfig) matchesDateRange(t *task.Task) bool {
	if c.DateFrom == nil && c.DateTo == nil {
		return true
	}

	var field *time.Time
	switch c.DateField {
	case DateFieldCreated:
		created := t.CreatedAt
		field = &created
	case DateFieldUpdated:
		updated := t.UpdatedAt
		field = &updated
	case DateFieldDeadline:
		field = t.Deadline
	default:
		// Unknown selector: skip the predicate rather than fail the view.
		return true
	}

	// A malformed range (start after end) is skipped, not an error.
	if c.DateFrom != nil && c.DateTo != nil && c.DateFrom.After(*c.DateTo) {
		return true
	}

	if field == nil {
		return false
	}
	if c.DateFrom != nil && field.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && field.After(endOfDay(*c.DateTo)) {
		return false
	}
	return true
}

func (c FilterConfig) matchesBucket(t *task.Task, now time.Time) bool {
	switch c.Bucket {
	case BucketDueToday:
		return schedule.IsDueToday(t, now)
	case BucketOverdue:
		return schedule.IsOverdue(t, now)
	default:
		// BucketAll and unknown values apply no predicate.
		return true
	}
}

// endOfDay makes the range end inclusive for the whole calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
