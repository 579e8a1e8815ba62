// Package lifecycle implements the task status transition engine. Every
// function validates against the legal-transition table and the shared
// authorization policy, then returns an updated copy of the task. Inputs are
// never mutated; committing the result is the caller's job.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/taskboard/domain/policy"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
)

// TransitionRequest is a direct status change request.
type TransitionRequest struct {
	Target task.Status
	// Confirmed must be true for solved -> closed; closing is irreversible.
	Confirmed bool
}

// Transition validates and applies a direct status transition.
func Transition(actor *user.Actor, tsk *task.Task, req TransitionRequest, now time.Time) (*task.Task, error) {
	if !req.Target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", task.ErrValidation, string(req.Target))
	}

	if err := policy.Decide(actor, tsk, policy.Request{
		Action: policy.ActionTransition,
		Target: req.Target,
	}); err != nil {
		return nil, err
	}

	// Re-requesting the current waiting state is a no-op success; every
	// other same-state request is an error.
	if tsk.Status == req.Target {
		if tsk.Status.IsLateral() {
			updated := *tsk
			updated.UpdatedAt = now
			return &updated, nil
		}
		return nil, task.IllegalTransitionError(tsk.Status, req.Target)
	}

	if !task.CanTransition(tsk.Status, req.Target) {
		return nil, task.IllegalTransitionError(tsk.Status, req.Target)
	}

	if req.Target == task.StatusClosed && !req.Confirmed {
		return nil, task.ErrNotConfirmed
	}

	updated := *tsk
	updated.Status = req.Target
	updated.UpdatedAt = now
	if req.Target == task.StatusClosed {
		closedAt := now
		updated.ClosedAt = &closedAt
	}
	return &updated, nil
}

// Take assigns the acting actor as responsible for an unassigned task.
// Any actor who can see the task may take it.
func Take(actor *user.Actor, tsk *task.Task, now time.Time) (*task.Task, error) {
	if tsk.Status == task.StatusClosed {
		return nil, task.ErrTaskImmutable
	}
	if tsk.Status != task.StatusUnassigned {
		return nil, task.IllegalTransitionError(tsk.Status, task.StatusAssigned)
	}

	updated := *tsk
	actorID := actor.ID
	updated.ResponsibleID = &actorID
	updated.Status = task.StatusAssigned
	updated.UpdatedAt = now
	return &updated, nil
}

// Release lets the current responsible hand an assigned task back.
func Release(actor *user.Actor, tsk *task.Task, now time.Time) (*task.Task, error) {
	if tsk.Status == task.StatusClosed {
		return nil, task.ErrTaskImmutable
	}
	if tsk.Status != task.StatusAssigned {
		return nil, task.IllegalTransitionError(tsk.Status, task.StatusUnassigned)
	}
	if !tsk.ResponsibleIs(actor.ID) {
		return nil, task.ErrNotPermitted
	}

	updated := *tsk
	updated.ResponsibleID = nil
	updated.Status = task.StatusUnassigned
	updated.UpdatedAt = now
	return &updated, nil
}

// SetResponsible assigns or clears the responsible. Responsible assignment is
// orthogonal to status except at the unassigned/assigned boundary: assigning
// an unassigned task moves it to assigned, clearing an assigned task moves it
// back to unassigned. A swap mid-flight leaves the status alone.
func SetResponsible(actor *user.Actor, tsk *task.Task, responsibleID *string, now time.Time) (*task.Task, error) {
	if err := policy.Decide(actor, tsk, policy.Request{Action: policy.ActionChangeResponsible}); err != nil {
		return nil, err
	}

	updated := *tsk
	updated.UpdatedAt = now
	if responsibleID == nil || *responsibleID == "" {
		updated.ResponsibleID = nil
		if updated.Status == task.StatusAssigned {
			updated.Status = task.StatusUnassigned
		}
		return &updated, nil
	}

	id := *responsibleID
	updated.ResponsibleID = &id
	if updated.Status == task.StatusUnassigned {
		updated.Status = task.StatusAssigned
	}
	return &updated, nil
}

// FieldEdit carries optional field changes; nil means leave the field alone.
type FieldEdit struct {
	Title       *string
	Description *string
	Priority    *task.Priority
	Deadline    *time.Time
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool
}

// EditFields applies creator-only field edits.
func EditFields(actor *user.Actor, tsk *task.Task, edit FieldEdit, now time.Time) (*task.Task, error) {
	if err := policy.Decide(actor, tsk, policy.Request{Action: policy.ActionEditFields}); err != nil {
		return nil, err
	}

	updated := *tsk
	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			return nil, task.ErrEmptyTitle
		}
		updated.Title = title
	}
	if edit.Description != nil {
		updated.Description = *edit.Description
	}
	if edit.Priority != nil {
		if !edit.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", task.ErrValidation, string(*edit.Priority))
		}
		updated.Priority = *edit.Priority
	}
	if edit.ClearDeadline {
		updated.Deadline = nil
	} else if edit.Deadline != nil {
		d := *edit.Deadline
		updated.Deadline = &d
	}
	updated.UpdatedAt = now
	return &updated, nil
}
