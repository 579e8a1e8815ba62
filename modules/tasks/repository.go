package tasks

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/taskboard/domain/comment"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/domain/view"
	"gorm.io/gorm"
)

// Repository handles task persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(t *task.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(id string) (*task.Task, error) {
	var t task.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// FindByScope retrieves the task collection visible under the given scope.
// Scope restriction lives here, at the fetch, not in the per-task policy:
// all_tasks is denied outright for members.
func (r *Repository) FindByScope(scope view.Scope, actor *user.Actor) ([]*task.Task, error) {
	query := r.db.Order("created_at")

	switch scope {
	case view.ScopeAssignedToMe:
		query = query.Where("responsible_id = ?", actor.ID)
	case view.ScopeAllTasks:
		if !actor.Role.CanReadAllTeams() {
			return nil, fmt.Errorf("%w: scope all_tasks requires admin or manager", task.ErrNotPermitted)
		}
	default:
		// own_team, and any unknown scope value, degrades to the
		// actor's teams rather than leaking a broader view.
		query = query.Where("team_id IN ?", actor.TeamIDs)
	}

	var tasks []*task.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Commit persists an engine-produced task state. The update is conditional
// on the snapshot's updated_at still matching the stored row; a mismatch
// means someone else committed first and the caller must re-fetch.
func (r *Repository) Commit(updated *task.Task, snapshotUpdatedAt time.Time) error {
	result := r.db.Model(&task.Task{}).
		Where("id = ? AND updated_at = ?", updated.ID, snapshotUpdatedAt).
		Updates(map[string]any{
			"title":          updated.Title,
			"description":    updated.Description,
			"status":         updated.Status,
			"priority":       updated.Priority,
			"responsible_id": updated.ResponsibleID,
			"deadline":       updated.Deadline,
			"closed_at":      updated.ClosedAt,
			"updated_at":     updated.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to commit task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a vanished task from a lost race.
		var count int64
		if err := r.db.Model(&task.Task{}).Where("id = ?", updated.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check task existence: %w", err)
		}
		if count == 0 {
			return task.ErrNotFound
		}
		return task.ErrConflict
	}
	return nil
}

// AddSystemComment appends a system-generated note to a task's comment
// trail, e.g. after a status change. System comments are created here
// because they belong to the transition, not to any actor.
func (r *Repository) AddSystemComment(taskID, body string, now time.Time) error {
	c := comment.NewSystem(taskID, body, now)
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create system comment: %w", err)
	}
	return nil
}

// Delete removes a task permanently. Only reachable through the admin
// delete path of the policy.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&task.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}
