package task

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusUnassigned means no one is responsible yet.
	StatusUnassigned Status = "unassigned"
	// StatusAssigned means a responsible is set but work has not started.
	StatusAssigned Status = "assigned"
	// StatusInProgress means the responsible is actively working.
	StatusInProgress Status = "in_progress"
	// StatusAwaitingResponse means work is blocked on an external reply.
	StatusAwaitingResponse Status = "awaiting_response"
	// StatusAwaitingAction means work is blocked on an external action.
	StatusAwaitingAction Status = "awaiting_action"
	// StatusSolved means the responsible considers the work done.
	StatusSolved Status = "solved"
	// StatusClosed is terminal; a closed task is immutable.
	StatusClosed Status = "closed"
)

// AllStatuses lists every status in the fixed board display order.
var AllStatuses = []Status{
	StatusUnassigned,
	StatusAssigned,
	StatusInProgress,
	StatusAwaitingResponse,
	StatusAwaitingAction,
	StatusSolved,
	StatusClosed,
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnassigned, StatusAssigned, StatusInProgress,
		StatusAwaitingResponse, StatusAwaitingAction, StatusSolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// IsCompleted reports whether the task no longer counts as pending work.
func (s Status) IsCompleted() bool {
	return s == StatusSolved || s == StatusClosed
}

// IsActive reports whether the status belongs to the active working set,
// the set of sources for direct status transitions.
func (s Status) IsActive() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusAwaitingResponse, StatusAwaitingAction:
		return true
	default:
		return false
	}
}

// IsLateral reports whether the status is one of the waiting states.
// Re-requesting the same waiting state is a no-op success, not an error.
func (s Status) IsLateral() bool {
	return s == StatusAwaitingResponse || s == StatusAwaitingAction
}

// CanTransition reports whether from -> to is in the legal-transition table
// for direct status requests. Assignment moves (unassigned <-> assigned) are
// not listed here: responsible assignment is orthogonal to status requests
// and goes through Take/Release/Assign.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusAssigned, StatusInProgress, StatusAwaitingResponse, StatusAwaitingAction:
		switch to {
		case StatusInProgress, StatusAwaitingResponse, StatusAwaitingAction, StatusSolved:
			return true
		}
		return false
	case StatusSolved:
		return to == StatusClosed || to == StatusInProgress
	default:
		// unassigned has no direct transitions, closed is terminal.
		return false
	}
}
