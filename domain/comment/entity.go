// Package comment provides the task comment entity.
package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-mostly note on a task. Edits are allowed only by the
// author, deletion is soft, and system comments are never editable.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"task_id"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"author_id"`
	Body      string    `gorm:"size:4000;not null" json:"body"`
	IsSystem  bool      `gorm:"not null;default:false" json:"is_system"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Comment entity.
func (Comment) TableName() string {
	return "comments"
}

// New creates a user-authored comment.
func New(taskID, authorID, body string, now time.Time) *Comment {
	return &Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSystem creates a system-generated comment, e.g. a status change note.
func NewSystem(taskID, body string, now time.Time) *Comment {
	c := New(taskID, "", body, now)
	c.IsSystem = true
	return c
}
