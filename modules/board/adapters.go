package board

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/taskboard/domain/view"
	"github.com/example/taskboard/modules/filterstore"
	"github.com/example/taskboard/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskAdapter implements TaskLister against the task module's services.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{container: container}
}

// List fetches the actor's visible tasks for a scope.
func (a *TaskAdapter) List(ctx context.Context, actorID string, scope view.Scope) ([]tasks.TaskResponse, error) {
	req := tasks.ListTasksRequest{ActorID: actorID, Scope: scope}
	var resp tasks.ListTasksResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"task.list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("task.list request failed: %w", err)
	}
	return resp.Tasks, nil
}

// FilterAdapter implements FilterLoader against the filterstore services.
type FilterAdapter struct {
	container mono.ServiceContainer
}

// NewFilterAdapter creates a new FilterAdapter.
func NewFilterAdapter(container mono.ServiceContainer) *FilterAdapter {
	return &FilterAdapter{container: container}
}

// Load fetches the actor's saved filter configuration.
func (a *FilterAdapter) Load(ctx context.Context, actorID string) (view.FilterConfig, error) {
	req := filterstore.GetFiltersRequest{ActorID: actorID}
	var resp filterstore.GetFiltersResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"filters.get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return view.FilterConfig{}, fmt.Errorf("filters.get request failed: %w", err)
	}
	return resp.Config, nil
}
