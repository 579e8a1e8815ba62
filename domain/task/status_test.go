package task

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "assigned to in_progress", from: StatusAssigned, to: StatusInProgress, want: true},
		{name: "in_progress to awaiting_response", from: StatusInProgress, to: StatusAwaitingResponse, want: true},
		{name: "in_progress to awaiting_action", from: StatusInProgress, to: StatusAwaitingAction, want: true},
		{name: "awaiting_response to in_progress", from: StatusAwaitingResponse, to: StatusInProgress, want: true},
		{name: "awaiting_action to awaiting_response", from: StatusAwaitingAction, to: StatusAwaitingResponse, want: true},
		{name: "assigned to solved", from: StatusAssigned, to: StatusSolved, want: true},
		{name: "in_progress to solved", from: StatusInProgress, to: StatusSolved, want: true},
		{name: "solved to closed", from: StatusSolved, to: StatusClosed, want: true},
		{name: "solved to in_progress reopen", from: StatusSolved, to: StatusInProgress, want: true},
		{name: "closed is terminal", from: StatusClosed, to: StatusInProgress, want: false},
		{name: "closed to solved", from: StatusClosed, to: StatusSolved, want: false},
		{name: "unassigned has no direct transitions", from: StatusUnassigned, to: StatusInProgress, want: false},
		{name: "unassigned to assigned is not direct", from: StatusUnassigned, to: StatusAssigned, want: false},
		{name: "assigned to unassigned is not direct", from: StatusAssigned, to: StatusUnassigned, want: false},
		{name: "in_progress to closed skips solved", from: StatusInProgress, to: StatusClosed, want: false},
		{name: "solved to awaiting_response", from: StatusSolved, to: StatusAwaitingResponse, want: false},
		{name: "active to unassigned", from: StatusInProgress, to: StatusUnassigned, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusClosed.IsTerminal() {
		t.Error("closed must be terminal")
	}
	for _, s := range AllStatuses {
		if s != StatusClosed && s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}

	for _, s := range []Status{StatusSolved, StatusClosed} {
		if !s.IsCompleted() {
			t.Errorf("%s must count as completed", s)
		}
	}
	for _, s := range []Status{StatusUnassigned, StatusAssigned, StatusInProgress, StatusAwaitingResponse, StatusAwaitingAction} {
		if s.IsCompleted() {
			t.Errorf("%s must not count as completed", s)
		}
	}

	if !StatusAwaitingResponse.IsLateral() || !StatusAwaitingAction.IsLateral() {
		t.Error("awaiting states must be lateral")
	}
	if StatusInProgress.IsLateral() {
		t.Error("in_progress is not lateral")
	}

	if Status("archived").IsValid() {
		t.Error("unknown status must not validate")
	}
}

func TestPriorityWeight(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityLow, 1},
		{PriorityMedium, 2},
		{PriorityHigh, 3},
		{PriorityCritical, 4},
		{Priority("urgent"), 0},
		{Priority(""), 0},
	}

	for _, tt := range tests {
		if got := tt.priority.Weight(); got != tt.want {
			t.Errorf("Priority(%q).Weight() = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestKindFromMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{ErrNotFound.Error(), KindNotFound},
		{IllegalTransitionError(StatusClosed, StatusSolved).Error(), KindIllegalTransition},
		{"request failed: " + ErrConflict.Error(), KindConflict},
		{ErrNotConfirmed.Error(), KindValidation},
		{"something else entirely", ""},
	}

	for _, tt := range tests {
		if got := KindFromMessage(tt.msg); got != tt.want {
			t.Errorf("KindFromMessage(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
