package tasks

import (
	"fmt"
	"time"

	"github.com/example/taskboard/domain/lifecycle"
	"github.com/example/taskboard/domain/policy"
	"github.com/example/taskboard/domain/schedule"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/domain/view"
)

// Service wires the transition engine to persistence. All validation happens
// in the domain packages; this layer fetches, delegates and commits.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a new task service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create creates a task in the actor's team. Admins may create tasks for
// any team.
func (s *Service) Create(actor *user.Actor, req CreateTaskRequest) (*task.Task, error) {
	if req.TeamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", task.ErrValidation)
	}
	if actor.Role != user.RoleAdmin && !actor.InTeam(req.TeamID) {
		return nil, fmt.Errorf("%w: cannot create a task for a foreign team", task.ErrNotPermitted)
	}

	t, err := task.New(req.Title, req.Description, req.TeamID, actor.ID, req.Priority, req.Deadline, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a single task, honoring team visibility for members.
func (s *Service) Get(actor *user.Actor, id string) (*task.Task, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !s.canSee(actor, t) {
		// Hidden, not merely forbidden.
		return nil, task.ErrNotFound
	}
	return t, nil
}

// List retrieves the task collection for a scope.
func (s *Service) List(actor *user.Actor, scope view.Scope) ([]*task.Task, error) {
	return s.repo.FindByScope(scope, actor)
}

// Update applies creator-only field edits.
func (s *Service) Update(actor *user.Actor, req UpdateTaskRequest) (*task.Task, error) {
	t, err := s.Get(actor, req.ID)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.EditFields(actor, t, lifecycle.FieldEdit{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.commit(updated, t, req.Snapshot); err != nil {
		return nil, err
	}
	return updated, nil
}

// Transition validates and commits a direct status change, leaving a system
// comment behind on success.
func (s *Service) Transition(actor *user.Actor, req TransitionTaskRequest) (*task.Task, error) {
	t, err := s.Get(actor, req.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := lifecycle.Transition(actor, t, lifecycle.TransitionRequest{
		Target:    req.Target,
		Confirmed: req.Confirmed,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := s.commit(updated, t, req.Snapshot); err != nil {
		return nil, err
	}

	if t.Status != updated.Status {
		s.systemNote(updated.ID, fmt.Sprintf("status changed: %s -> %s", t.Status, updated.Status), now)
	}
	return updated, nil
}

// Take assigns the actor as responsible for an unassigned task.
func (s *Service) Take(actor *user.Actor, req TakeTaskRequest) (*task.Task, error) {
	t, err := s.Get(actor, req.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := lifecycle.Take(actor, t, now)
	if err != nil {
		return nil, err
	}
	if err := s.commit(updated, t, req.Snapshot); err != nil {
		return nil, err
	}
	s.systemNote(updated.ID, fmt.Sprintf("taken by %s", actor.ID), now)
	return updated, nil
}

// Release hands an assigned task back to the unassigned pool.
func (s *Service) Release(actor *user.Actor, req ReleaseTaskRequest) (*task.Task, error) {
	t, err := s.Get(actor, req.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := lifecycle.Release(actor, t, now)
	if err != nil {
		return nil, err
	}
	if err := s.commit(updated, t, req.Snapshot); err != nil {
		return nil, err
	}
	s.systemNote(updated.ID, fmt.Sprintf("released by %s", actor.ID), now)
	return updated, nil
}

// Assign sets or clears the responsible.
func (s *Service) Assign(actor *user.Actor, req AssignTaskRequest) (*task.Task, error) {
	t, err := s.Get(actor, req.ID)
	if err != nil {
		return nil, err
	}

	var responsibleID *string
	if req.ResponsibleID != "" {
		responsibleID = &req.ResponsibleID
	}

	updated, err := lifecycle.SetResponsible(actor, t, responsibleID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.commit(updated, t, req.Snapshot); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a task. Role-gated to admin by the policy.
func (s *Service) Delete(actor *user.Actor, req DeleteTaskRequest) error {
	t, err := s.repo.FindByID(req.ID)
	if err != nil {
		return err
	}
	if err := policy.Decide(actor, t, policy.Request{Action: policy.ActionDelete}); err != nil {
		return err
	}
	return s.repo.Delete(req.ID)
}

// commit persists an engine result conditionally on the snapshot the caller
// read. Without an explicit snapshot the freshly fetched state serves; the
// commit is always conditional, never last-write-wins.
func (s *Service) commit(updated, fetched *task.Task, snapshot *time.Time) error {
	base := fetched.UpdatedAt
	if snapshot != nil {
		base = *snapshot
	}
	return s.repo.Commit(updated, base)
}

func (s *Service) canSee(actor *user.Actor, t *task.Task) bool {
	if actor.Role.CanReadAllTeams() {
		return true
	}
	return actor.InTeam(t.TeamID) || t.ResponsibleIs(actor.ID) || t.CreatorIs(actor.ID)
}

func (s *Service) systemNote(taskID, body string, now time.Time) {
	// System notes are best effort; a failed note never fails the
	// transition that already committed.
	_ = s.repo.AddSystemComment(taskID, body, now)
}

// Response converts a task entity to its response form, computing the
// deadline badges against the service clock.
func (s *Service) Response(t *task.Task) TaskResponse {
	now := s.now()
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		CreatedBy:     t.CreatedBy,
		ResponsibleID: t.ResponsibleID,
		TeamID:        t.TeamID,
		Deadline:      t.Deadline,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		ClosedAt:      t.ClosedAt,
		IsOverdue:     schedule.IsOverdue(t, now),
		IsDueToday:    schedule.IsDueToday(t, now),
	}
}
