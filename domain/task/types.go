// Package task provides the core task entity, its status state machine
// and the shared error taxonomy.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority represents the urgency of a task.
type Priority string

const (
	// PriorityLow is the lowest priority.
	PriorityLow Priority = "low"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks urgent work.
	PriorityHigh Priority = "high"
	// PriorityCritical marks work that blocks everything else.
	PriorityCritical Priority = "critical"
)

// Weight returns the ordinal weight used for sorting.
// Unrecognized values weigh 0 so a bad record never breaks a comparator.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p.Weight() > 0
}

// Task represents a tracked unit of work owned by a team.
type Task struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"size:4000" json:"description"`
	Status        Status     `gorm:"size:32;not null;index" json:"status"`
	Priority      Priority   `gorm:"size:16;not null" json:"priority"`
	CreatedBy     string     `gorm:"size:36;not null;index" json:"created_by"`
	ResponsibleID *string    `gorm:"size:36;index" json:"responsible_id,omitempty"`
	TeamID        string     `gorm:"size:36;not null;index" json:"team_id"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	// UpdatedAt doubles as the optimistic-concurrency token, so the
	// engine stamps it explicitly instead of letting GORM touch it.
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// New creates a task in the initial unassigned state.
func New(title, description, teamID, createdBy string, priority Priority, deadline *time.Time, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      StatusUnassigned,
		Priority:    priority,
		CreatedBy:   createdBy,
		TeamID:      teamID,
		Deadline:    deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ResponsibleIs reports whether the given actor is the current responsible.
func (t *Task) ResponsibleIs(actorID string) bool {
	return t.ResponsibleID != nil && *t.ResponsibleID == actorID
}

// CreatorIs reports whether the given actor created the task.
func (t *Task) CreatorIs(actorID string) bool {
	return t.CreatedBy == actorID
}
