package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/example/taskboard/modules/tasks"
)

type stubLister struct {
	tasks []tasks.TaskResponse
	err   error
	scope view.Scope
}

func (s *stubLister) List(_ context.Context, _ string, scope view.Scope) ([]tasks.TaskResponse, error) {
	s.scope = scope
	return s.tasks, s.err
}

type stubFilters struct {
	cfg view.FilterConfig
	err error
}

func (s *stubFilters) Load(_ context.Context, _ string) (view.FilterConfig, error) {
	return s.cfg, s.err
}

var boardNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func boardTask(id string, status task.Status, priority task.Priority, created time.Time) tasks.TaskResponse {
	return tasks.TaskResponse{
		ID:        id,
		Title:     "task " + id,
		Status:    status,
		Priority:  priority,
		TeamID:    "team-a",
		CreatedBy: "alice",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func newBoardService(lister TaskLister, filters FilterLoader) *Service {
	return NewService(lister, filters).WithClock(func() time.Time { return boardNow })
}

func TestRenderGroupsIntoStableColumns(t *testing.T) {
	lister := &stubLister{tasks: []tasks.TaskResponse{
		boardTask("t1", task.StatusInProgress, task.PriorityHigh, boardNow.Add(-2*time.Hour)),
		boardTask("t2", task.StatusUnassigned, task.PriorityLow, boardNow.Add(-time.Hour)),
		boardTask("t3", task.StatusInProgress, task.PriorityLow, boardNow.Add(-time.Hour)),
	}}
	svc := newBoardService(lister, &stubFilters{cfg: view.DefaultFilterConfig()})

	resp, err := svc.Render(context.Background(), BoardRequest{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// One column per status, in display order, empty ones included.
	if len(resp.Columns) != len(task.AllStatuses) {
		t.Fatalf("columns = %d, want %d", len(resp.Columns), len(task.AllStatuses))
	}
	for i, col := range resp.Columns {
		if col.Status != task.AllStatuses[i] {
			t.Errorf("column %d = %s, want %s", i, col.Status, task.AllStatuses[i])
		}
		if col.Tasks == nil {
			t.Errorf("column %s has nil task list, want empty slice", col.Status)
		}
	}

	byStatus := make(map[task.Status]BoardColumn)
	for _, col := range resp.Columns {
		byStatus[col.Status] = col
	}
	if byStatus[task.StatusInProgress].Count != 2 || byStatus[task.StatusUnassigned].Count != 1 {
		t.Errorf("counts wrong: in_progress=%d unassigned=%d", byStatus[task.StatusInProgress].Count, byStatus[task.StatusUnassigned].Count)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestRenderAppliesSavedFilters(t *testing.T) {
	lister := &stubLister{tasks: []tasks.TaskResponse{
		boardTask("t1", task.StatusInProgress, task.PriorityHigh, boardNow.Add(-time.Hour)),
		boardTask("t2", task.StatusInProgress, task.PriorityLow, boardNow.Add(-time.Hour)),
	}}
	cfg := view.FilterConfig{Priority: task.PriorityHigh, Bucket: view.BucketAll, Scope: view.ScopeAssignedToMe}
	svc := newBoardService(lister, &stubFilters{cfg: cfg})

	resp, err := svc.Render(context.Background(), BoardRequest{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want only the high priority task", resp.Total)
	}
	// The saved scope drives the fetch.
	if lister.scope != view.ScopeAssignedToMe {
		t.Errorf("fetch scope = %s, want assigned_to_me", lister.scope)
	}
	// The effective configuration is echoed back.
	if resp.Filters.Priority != task.PriorityHigh {
		t.Errorf("echoed filters = %+v, want saved config", resp.Filters)
	}
}

func TestRenderSortsWithinColumns(t *testing.T) {
	lister := &stubLister{tasks: []tasks.TaskResponse{
		boardTask("old", task.StatusInProgress, task.PriorityLow, boardNow.Add(-3*time.Hour)),
		boardTask("new", task.StatusInProgress, task.PriorityLow, boardNow.Add(-time.Hour)),
	}}
	svc := newBoardService(lister, &stubFilters{cfg: view.DefaultFilterConfig()})

	resp, err := svc.Render(context.Background(), BoardRequest{
		ActorID:   "alice",
		SortBy:    view.SortByCreated,
		Direction: view.Descending,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, col := range resp.Columns {
		if col.Status != task.StatusInProgress {
			continue
		}
		if len(col.Tasks) != 2 || col.Tasks[0].ID != "new" {
			t.Errorf("in_progress column = %+v, want newest first", col.Tasks)
		}
	}
}

func TestRenderSurvivesFilterStoreFailure(t *testing.T) {
	lister := &stubLister{tasks: []tasks.TaskResponse{
		boardTask("t1", task.StatusInProgress, task.PriorityLow, boardNow.Add(-time.Hour)),
	}}
	svc := newBoardService(lister, &stubFilters{err: errors.New("redis down")})

	resp, err := svc.Render(context.Background(), BoardRequest{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if resp.Total != 1 || resp.Filters.Bucket != view.BucketAll {
		t.Errorf("resp = total:%d filters:%+v, want defaults applied", resp.Total, resp.Filters)
	}
}

func TestRenderPropagatesListFailure(t *testing.T) {
	lister := &stubLister{err: task.ErrNotPermitted}
	svc := newBoardService(lister, &stubFilters{cfg: view.FilterConfig{Scope: view.ScopeAllTasks, Bucket: view.BucketAll}})

	_, err := svc.Render(context.Background(), BoardRequest{ActorID: "mallory"})
	if !errors.Is(err, task.ErrNotPermitted) {
		t.Errorf("Render() = %v, want ErrNotPermitted", err)
	}
}
