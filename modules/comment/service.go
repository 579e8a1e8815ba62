package comment

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/taskboard/domain/comment"
	"github.com/example/taskboard/domain/policy"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
)

// Service implements comment business logic. Every mutation is authorized
// against the parent task, so a closed task freezes its thread along with
// everything else.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a new comment service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the service clock. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Add appends a comment to a task's thread.
func (s *Service) Add(actor *user.Actor, req AddCommentRequest) (*comment.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", task.ErrValidation)
	}

	t, err := s.visibleTask(actor, req.TaskID)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, t, policy.Request{Action: policy.ActionCommentAdd}); err != nil {
		return nil, err
	}

	c := comment.New(t.ID, actor.ID, req.Body, s.now())
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a task's live comments, system notes included.
func (s *Service) List(actor *user.Actor, taskID string) ([]*comment.Comment, error) {
	t, err := s.visibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTask(t.ID)
}

// Edit rewrites a comment's body. Only the author may edit, and system
// comments are untouchable.
func (s *Service) Edit(actor *user.Actor, req EditCommentRequest) (*comment.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", task.ErrValidation)
	}

	c, t, err := s.visibleComment(actor, req.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, t, policy.Request{Action: policy.ActionCommentEdit, Comment: c}); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateBody(c.ID, req.Body, now); err != nil {
		return nil, err
	}
	c.Body = req.Body
	c.UpdatedAt = now
	return c, nil
}

// Delete soft-deletes a comment.
func (s *Service) Delete(actor *user.Actor, req DeleteCommentRequest) error {
	c, t, err := s.visibleComment(actor, req.ID)
	if err != nil {
		return err
	}
	if err := policy.Decide(actor, t, policy.Request{Action: policy.ActionCommentDelete, Comment: c}); err != nil {
		return err
	}
	return s.repo.SoftDelete(c.ID, s.now())
}

// visibleTask loads the task and hides it from actors outside its team.
func (s *Service) visibleTask(actor *user.Actor, taskID string) (*task.Task, error) {
	t, err := s.repo.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanReadAllTeams() && !actor.InTeam(t.TeamID) {
		return nil, task.ErrNotFound
	}
	return t, nil
}

func (s *Service) visibleComment(actor *user.Actor, commentID string) (*comment.Comment, *task.Task, error) {
	c, err := s.repo.FindByID(commentID)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.visibleTask(actor, c.TaskID)
	if err != nil {
		return nil, nil, err
	}
	return c, t, nil
}

// Response converts a comment to its service representation.
func (s *Service) Response(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		IsSystem:  c.IsSystem,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
