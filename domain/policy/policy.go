// Package policy implements the authorization decision function shared by
// the task and comment modules. The rule order is load-bearing: the closed
// task gate always wins, and delete is role-gated independent of identity.
package policy

import (
	"github.com/example/taskboard/domain/comment"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
)

// Action identifies what the actor is trying to do to a task.
type Action string

const (
	// ActionRead views a task. Always allowed per-task; team scoping is
	// enforced at the repository fetch, not here.
	ActionRead Action = "read"
	// ActionDelete removes a task entirely.
	ActionDelete Action = "delete"
	// ActionEditFields changes title, description or priority.
	ActionEditFields Action = "edit_fields"
	// ActionChangeResponsible assigns or removes the responsible.
	ActionChangeResponsible Action = "change_responsible"
	// ActionTransition requests a status change; Request.Target names it.
	ActionTransition Action = "transition"
	// ActionCommentAdd adds a comment to a task.
	ActionCommentAdd Action = "comment_add"
	// ActionCommentEdit edits a comment; Request.Comment names it.
	ActionCommentEdit Action = "comment_edit"
	// ActionCommentDelete soft-deletes a comment; Request.Comment names it.
	ActionCommentDelete Action = "comment_delete"
)

// Request describes a single authorization question.
type Request struct {
	Action Action
	// Target is the requested status for ActionTransition.
	Target task.Status
	// Comment is the subject of ActionCommentEdit/ActionCommentDelete.
	Comment *comment.Comment
}

// Decide evaluates the ordered rule list for (actor, task, request) and
// returns nil when allowed, or a typed denial. First match wins.
func Decide(actor *user.Actor, tsk *task.Task, req Request) error {
	// Rule 1: a closed task is immutable. Admin delete is the sole exception.
	if tsk.Status == task.StatusClosed && req.Action != ActionRead {
		if req.Action == ActionDelete && actor.Role == user.RoleAdmin {
			return nil
		}
		return task.ErrTaskImmutable
	}

	switch req.Action {
	case ActionRead:
		return nil

	// Rule 2: delete is role-gated, creator identity is irrelevant.
	case ActionDelete:
		if actor.Role == user.RoleAdmin {
			return nil
		}
		return task.ErrNotPermitted

	// Rule 3: field edits belong to the creator.
	case ActionEditFields:
		if tsk.CreatorIs(actor.ID) {
			return nil
		}
		return task.ErrNotPermitted

	// Rule 4: the creator may reassign; the responsible may self-release.
	case ActionChangeResponsible:
		if tsk.CreatorIs(actor.ID) || tsk.ResponsibleIs(actor.ID) {
			return nil
		}
		return task.ErrNotPermitted

	// Rule 5: status transitions.
	case ActionTransition:
		return decideTransition(actor, tsk, req.Target)

	// Comment creation respects the closed gate above and nothing else.
	case ActionCommentAdd:
		return nil

	// Rule 6: comments belong to their author; system comments to no one.
	case ActionCommentEdit, ActionCommentDelete:
		if req.Comment == nil {
			return task.ErrNotFound
		}
		if req.Comment.IsSystem {
			return task.ErrNotPermitted
		}
		if req.Comment.AuthorID == actor.ID {
			return nil
		}
		return task.ErrNotPermitted
	}

	// Rule 7: default deny.
	return task.ErrNotPermitted
}

func decideTransition(actor *user.Actor, tsk *task.Task, target task.Status) error {
	switch target {
	case task.StatusClosed:
		// Only the creator may close.
		if tsk.CreatorIs(actor.ID) {
			return nil
		}
		return task.ErrNotPermitted
	case task.StatusSolved:
		// Only the responsible may solve, unless the actor is also creator.
		if tsk.ResponsibleIs(actor.ID) || tsk.CreatorIs(actor.ID) {
			return nil
		}
		return task.ErrNotPermitted
	default:
		// All other transitions permit either creator or responsible.
		if tsk.CreatorIs(actor.ID) || tsk.ResponsibleIs(actor.ID) {
			return nil
		}
		return task.ErrNotPermitted
	}
}
