package comment

import "time"

// CommentResponse represents a comment in service responses.
type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddCommentRequest represents a comment creation request.
type AddCommentRequest struct {
	ActorID string `json:"actor_id"`
	TaskID  string `json:"task_id"`
	Body    string `json:"body"`
}

// ListCommentsRequest represents a request for a task's comment thread.
type ListCommentsRequest struct {
	ActorID string `json:"actor_id"`
	TaskID  string `json:"task_id"`
}

// ListCommentsResponse represents a task's comment thread.
type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// EditCommentRequest represents an author rewriting their comment.
type EditCommentRequest struct {
	ActorID string `json:"actor_id"`
	ID      string `json:"id"`
	Body    string `json:"body"`
}

// DeleteCommentRequest represents an author removing their comment.
type DeleteCommentRequest struct {
	ActorID string `json:"actor_id"`
	ID      string `json:"id"`
}

// DeleteCommentResponse confirms a soft deletion.
type DeleteCommentResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
