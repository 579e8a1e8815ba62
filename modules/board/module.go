// Package board composes the task and filterstore modules into the grouped
// board view.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// BoardModule provides the board rendering service.
type BoardModule struct {
	service *Service
	lister  TaskLister
	filters FilterLoader
}

// Compile-time interface checks.
var _ mono.Module = (*BoardModule)(nil)
var _ mono.ServiceProviderModule = (*BoardModule)(nil)
var _ mono.DependentModule = (*BoardModule)(nil)
var _ mono.HealthCheckableModule = (*BoardModule)(nil)

// NewModule creates a new BoardModule.
func NewModule() *BoardModule {
	return &BoardModule{}
}

// Name returns the module name.
func (m *BoardModule) Name() string {
	return "board"
}

// Dependencies returns the list of module dependencies.
func (m *BoardModule) Dependencies() []string {
	return []string{"task", "filterstore"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *BoardModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.lister = NewTaskAdapter(container)
	case "filterstore":
		m.filters = NewFilterAdapter(container)
	}
}

// Start initializes the board module.
func (m *BoardModule) Start(_ context.Context) error {
	if m.lister == nil || m.filters == nil {
		return fmt.Errorf("task and filterstore dependencies not set")
	}
	m.service = NewService(m.lister, m.filters)
	log.Println("[board] Module started")
	return nil
}

// Stop shuts down the module.
func (m *BoardModule) Stop(_ context.Context) error {
	log.Println("[board] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *BoardModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *BoardModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(container, "board.view", json.Unmarshal, json.Marshal, m.handleView); err != nil {
		return fmt.Errorf("failed to register board.view service: %w", err)
	}
	log.Printf("[board] Registered services: view")
	return nil
}

func (m *BoardModule) handleView(ctx context.Context, req BoardRequest, _ *mono.Msg) (BoardResponse, error) {
	if req.ActorID == "" {
		return BoardResponse{}, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	return m.service.Render(ctx, req)
}
