package board

import (
	"context"
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/example/taskboard/modules/tasks"
)

// TaskLister fetches the actor's visible tasks for a scope.
type TaskLister interface {
	List(ctx context.Context, actorID string, scope view.Scope) ([]tasks.TaskResponse, error)
}

// FilterLoader fetches the actor's saved filter configuration.
type FilterLoader interface {
	Load(ctx context.Context, actorID string) (view.FilterConfig, error)
}

// Service renders the board: fetch by scope, filter, sort, then group into
// status columns. The pipeline itself is pure; all the I/O happens up front.
type Service struct {
	lister  TaskLister
	filters FilterLoader
	now     func() time.Time
}

// NewService creates a new board service.
func NewService(lister TaskLister, filters FilterLoader) *Service {
	return &Service{
		lister:  lister,
		filters: filters,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Render builds the actor's board view.
func (s *Service) Render(ctx context.Context, req BoardRequest) (BoardResponse, error) {
	cfg, err := s.filters.Load(ctx, req.ActorID)
	if err != nil {
		// Filter storage never blocks the board.
		cfg = view.DefaultFilterConfig()
	}

	fetched, err := s.lister.List(ctx, req.ActorID, cfg.Scope)
	if err != nil {
		return BoardResponse{}, err
	}

	// The pipeline runs on entities; the fetched responses keep their
	// computed deadline state for the final payload.
	byID := make(map[string]tasks.TaskResponse, len(fetched))
	entities := make([]*task.Task, 0, len(fetched))
	for _, r := range fetched {
		byID[r.ID] = r
		entities = append(entities, toEntity(r))
	}

	filtered := cfg.Apply(entities, s.now())

	key := req.SortBy
	if key == "" {
		key = view.SortByCreated
	}
	dir := req.Direction
	if dir == "" {
		dir = view.Ascending
	}
	sorted := view.Sort(filtered, key, dir)

	columns := view.Group(sorted)
	resp := BoardResponse{
		Columns: make([]BoardColumn, 0, len(columns)),
		Filters: cfg,
		Total:   len(sorted),
	}
	for _, col := range columns {
		out := BoardColumn{
			Status: col.Status,
			Tasks:  make([]tasks.TaskResponse, 0, len(col.Tasks)),
			Count:  len(col.Tasks),
		}
		for _, t := range col.Tasks {
			out.Tasks = append(out.Tasks, byID[t.ID])
		}
		resp.Columns = append(resp.Columns, out)
	}
	return resp, nil
}

func toEntity(r tasks.TaskResponse) *task.Task {
	return &task.Task{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		CreatedBy:     r.CreatedBy,
		ResponsibleID: r.ResponsibleID,
		TeamID:        r.TeamID,
		Deadline:      r.Deadline,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ClosedAt:      r.ClosedAt,
	}
}
