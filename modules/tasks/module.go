package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/example/taskboard/domain/comment"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task storage and the status transition services.
type TaskModule struct {
	db      *gorm.DB
	service *Service
	auth    auth.AuthPort
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the list of module dependencies.
func (m *TaskModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.auth = auth.NewAuthAdapter(container)
	}
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	if m.auth == nil {
		return fmt.Errorf("auth dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	// The comments table is shared with the comment module; migration is
	// idempotent so either module may start first.
	if err := db.AutoMigrate(&task.Task{}, &comment.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewRepository(db))

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"task.create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.create", json.Unmarshal, json.Marshal, m.handleCreate)
		}},
		{"task.get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.get", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"task.list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.list", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"task.update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.update", json.Unmarshal, json.Marshal, m.handleUpdate)
		}},
		{"task.transition", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.transition", json.Unmarshal, json.Marshal, m.handleTransition)
		}},
		{"task.take", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.take", json.Unmarshal, json.Marshal, m.handleTake)
		}},
		{"task.release", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.release", json.Unmarshal, json.Marshal, m.handleRelease)
		}},
		{"task.assign", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.assign", json.Unmarshal, json.Marshal, m.handleAssign)
		}},
		{"task.delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task.delete", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[task] Registered services: create, get, list, update, transition, take, release, assign, delete")
	return nil
}

func (m *TaskModule) actor(ctx context.Context, actorID string) (*user.Actor, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	actor, err := m.auth.GetActor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown actor", task.ErrNotPermitted)
	}
	return actor, nil
}

func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Create(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Get(actor, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	found, err := m.service.List(actor, req.Scope)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(found)),
		Total: len(found),
	}
	for _, t := range found {
		resp.Tasks = append(resp.Tasks, m.service.Response(t))
	}
	return resp, nil
}

func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Update(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleTransition(ctx context.Context, req TransitionTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Transition(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleTake(ctx context.Context, req TakeTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Take(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleRelease(ctx context.Context, req ReleaseTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Release(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleAssign(ctx context.Context, req AssignTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return TaskResponse{}, err
	}
	t, err := m.service.Assign(actor, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return m.service.Response(t), nil
}

func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	if err := m.service.Delete(actor, req); err != nil {
		return DeleteTaskResponse{ID: req.ID, Deleted: false}, err
	}
	return DeleteTaskResponse{ID: req.ID, Deleted: true}, nil
}
