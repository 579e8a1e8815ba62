package comment

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/taskboard/domain/comment"
	"github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// Repository handles comment persistence. Deletion is a soft flag so the
// discussion history stays reconstructible.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new comment.
func (r *Repository) Create(c *comment.Comment) error {
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID returns a comment by ID. Soft-deleted comments are not found.
func (r *Repository) FindByID(id string) (*comment.Comment, error) {
	var c comment.Comment
	err := r.db.First(&c, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &c, nil
}

// ListByTask returns the live comments of a task in creation order.
func (r *Repository) ListByTask(taskID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	err := r.db.
		Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateBody rewrites a comment's body and bumps updated_at.
func (r *Repository) UpdateBody(id, body string, now time.Time) error {
	result := r.db.Model(&comment.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"body":       body,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

// SoftDelete marks a comment deleted; the row stays for history.
func (r *Repository) SoftDelete(id string, now time.Time) error {
	result := r.db.Model(&comment.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

// FindTask loads the comment's parent task so the authorization rules can
// see its status and team.
func (r *Repository) FindTask(taskID string) (*task.Task, error) {
	var t task.Task
	err := r.db.First(&t, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}
