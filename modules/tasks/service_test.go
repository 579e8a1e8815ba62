package tasks

import (
	"errors"
	"testing"
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/domain/view"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	// A clock that ticks one second per reading, so every write gets a
	// distinct updated_at and snapshot checks are meaningful.
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewRepository(setupTestDB(t))).WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	return svc
}

func memberOf(id string, teams ...string) *user.Actor {
	return &user.Actor{ID: id, Role: user.RoleMember, TeamIDs: teams}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := setupService(t)
	member := memberOf("alice", "team-a")

	tests := []struct {
		name    string
		actor   *user.Actor
		req     CreateTaskRequest
		wantErr error
	}{
		{
			name:  "member creates in own team",
			actor: member,
			req:   CreateTaskRequest{Title: "fix login", TeamID: "team-a"},
		},
		{
			name:    "missing team rejected",
			actor:   member,
			req:     CreateTaskRequest{Title: "fix login"},
			wantErr: task.ErrValidation,
		},
		{
			name:    "empty title rejected",
			actor:   member,
			req:     CreateTaskRequest{Title: "   ", TeamID: "team-a"},
			wantErr: task.ErrValidation,
		},
		{
			name:    "member cannot create in foreign team",
			actor:   member,
			req:     CreateTaskRequest{Title: "fix login", TeamID: "team-b"},
			wantErr: task.ErrNotPermitted,
		},
		{
			name:  "admin creates anywhere",
			actor: &user.Actor{ID: "root", Role: user.RoleAdmin},
			req:   CreateTaskRequest{Title: "audit", TeamID: "team-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.Create(tt.actor, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Create() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if created.Status != task.StatusUnassigned {
				t.Errorf("new task status = %s, want unassigned", created.Status)
			}
		})
	}
}

func TestServiceGetHidesForeignTasks(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")

	created, err := svc.Create(creator, CreateTaskRequest{Title: "fix login", TeamID: "team-a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// An outsider gets not-found, not forbidden. The task's existence
	// is not disclosed.
	outsider := memberOf("mallory", "team-b")
	if _, err := svc.Get(outsider, created.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Get() as outsider = %v, want ErrNotFound", err)
	}

	// A manager sees across teams.
	manager := &user.Actor{ID: "boss", Role: user.RoleManager}
	if _, err := svc.Get(manager, created.ID); err != nil {
		t.Errorf("Get() as manager error = %v", err)
	}
}

// Walks a task through its whole life: created unassigned, taken by a
// worker, worked, solved, then closed with confirmation.
func TestServiceFullLifecycle(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")
	worker := memberOf("bob", "team-a")

	created, err := svc.Create(creator, CreateTaskRequest{Title: "fix login", TeamID: "team-a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	taken, err := svc.Take(worker, TakeTaskRequest{ID: created.ID})
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if taken.Status != task.StatusAssigned || taken.ResponsibleID == nil || *taken.ResponsibleID != "bob" {
		t.Fatalf("after take: status=%s responsible=%v", taken.Status, taken.ResponsibleID)
	}

	started, err := svc.Transition(worker, TransitionTaskRequest{ID: created.ID, Target: task.StatusInProgress})
	if err != nil {
		t.Fatalf("Transition(in_progress) error = %v", err)
	}
	if started.Status != task.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", started.Status)
	}

	solved, err := svc.Transition(worker, TransitionTaskRequest{ID: created.ID, Target: task.StatusSolved})
	if err != nil {
		t.Fatalf("Transition(solved) error = %v", err)
	}
	if solved.ClosedAt != nil {
		t.Errorf("solved task has closed_at = %v, want nil", solved.ClosedAt)
	}

	// Closing without confirmation is refused.
	_, err = svc.Transition(creator, TransitionTaskRequest{ID: created.ID, Target: task.StatusClosed})
	if !errors.Is(err, task.ErrValidation) {
		t.Fatalf("unconfirmed close = %v, want ErrValidation", err)
	}

	// Only the creator may close.
	_, err = svc.Transition(worker, TransitionTaskRequest{ID: created.ID, Target: task.StatusClosed, Confirmed: true})
	if !errors.Is(err, task.ErrNotPermitted) {
		t.Fatalf("close by responsible = %v, want ErrNotPermitted", err)
	}

	closed, err := svc.Transition(creator, TransitionTaskRequest{ID: created.ID, Target: task.StatusClosed, Confirmed: true})
	if err != nil {
		t.Fatalf("confirmed close error = %v", err)
	}
	if closed.Status != task.StatusClosed || closed.ClosedAt == nil {
		t.Fatalf("after close: status=%s closed_at=%v", closed.Status, closed.ClosedAt)
	}

	// Closed tasks shrug off every further edit.
	newTitle := "renamed"
	_, err = svc.Update(creator, UpdateTaskRequest{ID: created.ID, Title: &newTitle})
	if !errors.Is(err, task.ErrTaskImmutable) {
		t.Errorf("Update on closed = %v, want ErrTaskImmutable", err)
	}
	_, err = svc.Transition(creator, TransitionTaskRequest{ID: created.ID, Target: task.StatusInProgress})
	if !errors.Is(err, task.ErrTaskImmutable) {
		t.Errorf("Transition on closed = %v, want ErrTaskImmutable", err)
	}
}

func TestServiceStaleSnapshotConflicts(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")

	created, err := svc.Create(creator, CreateTaskRequest{Title: "fix login", TeamID: "team-a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	stale := created.UpdatedAt

	if _, err := svc.Take(creator, TakeTaskRequest{ID: created.ID}); err != nil {
		t.Fatalf("Take() error = %v", err)
	}

	// A second writer still holding the pre-take snapshot must lose.
	next := task.PriorityHigh
	_, err = svc.Update(creator, UpdateTaskRequest{ID: created.ID, Priority: &next, Snapshot: &stale})
	if !errors.Is(err, task.ErrConflict) {
		t.Errorf("Update with stale snapshot = %v, want ErrConflict", err)
	}
}

func TestServiceUpdateCreatorOnly(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")
	worker := memberOf("bob", "team-a")

	created, err := svc.Create(creator, CreateTaskRequest{Title: "fix login", TeamID: "team-a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Take(worker, TakeTaskRequest{ID: created.ID}); err != nil {
		t.Fatalf("Take() error = %v", err)
	}

	newTitle := "renamed"
	if _, err := svc.Update(worker, UpdateTaskRequest{ID: created.ID, Title: &newTitle}); !errors.Is(err, task.ErrNotPermitted) {
		t.Errorf("Update by responsible = %v, want ErrNotPermitted", err)
	}

	updated, err := svc.Update(creator, UpdateTaskRequest{ID: created.ID, Title: &newTitle})
	if err != nil {
		t.Fatalf("Update by creator error = %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("title = %q, want renamed", updated.Title)
	}
}

func TestServiceDeleteAdminOnly(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")

	created, err := svc.Create(creator, CreateTaskRequest{Title: "fix login", TeamID: "team-a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(creator, DeleteTaskRequest{ID: created.ID}); !errors.Is(err, task.ErrNotPermitted) {
		t.Errorf("Delete by creator = %v, want ErrNotPermitted", err)
	}

	admin := &user.Actor{ID: "root", Role: user.RoleAdmin}
	if err := svc.Delete(admin, DeleteTaskRequest{ID: created.ID}); err != nil {
		t.Fatalf("Delete by admin error = %v", err)
	}
	if _, err := svc.Get(admin, created.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestServiceResponseComputesDeadlineState(t *testing.T) {
	svc := setupService(t)
	creator := memberOf("alice", "team-a")

	past := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	created, err := svc.Create(creator, CreateTaskRequest{Title: "late", TeamID: "team-a", Deadline: &past})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp := svc.Response(created)
	if !resp.IsOverdue || resp.IsDueToday {
		t.Errorf("response = overdue:%v due_today:%v, want overdue only", resp.IsOverdue, resp.IsDueToday)
	}
}

func TestServiceListScopes(t *testing.T) {
	svc := setupService(t)
	a := memberOf("alice", "team-a")
	b := memberOf("bob", "team-b")

	if _, err := svc.Create(a, CreateTaskRequest{Title: "one", TeamID: "team-a"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(b, CreateTaskRequest{Title: "two", TeamID: "team-b"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	own, err := svc.List(a, view.ScopeOwnTeam)
	if err != nil {
		t.Fatalf("List(own_team) error = %v", err)
	}
	if len(own) != 1 || own[0].Title != "one" {
		t.Errorf("own_team list = %d tasks, want just team-a's", len(own))
	}

	if _, err := svc.List(a, view.ScopeAllTasks); !errors.Is(err, task.ErrNotPermitted) {
		t.Errorf("List(all_tasks) as member = %v, want ErrNotPermitted", err)
	}
}
