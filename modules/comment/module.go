package comment

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

// CommentModule provides the comment thread services.
type CommentModule struct {
	db      *gorm.DB
	service *Service
	auth    auth.AuthPort
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*CommentModule)(nil)
var _ mono.ServiceProviderModule = (*CommentModule)(nil)
var _ mono.DependentModule = (*CommentModule)(nil)
var _ mono.HealthCheckableModule = (*CommentModule)(nil)

// NewModule creates a new CommentModule.
func NewModule() *CommentModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &CommentModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *CommentModule) Name() string {
	return "comment"
}

// Dependencies returns the list of module dependencies. The task module is
// listed so the shared tables exist before comments start flowing.
func (m *CommentModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *CommentModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.auth = auth.NewAuthAdapter(container)
	}
}

// Start initializes the comment module.
func (m *CommentModule) Start(_ context.Context) error {
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

	if err := db.AutoMigrate(&comment.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewRepository(db))

	log.Printf("[comment] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *CommentModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[comment] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CommentModule) Health(_ context.Context) mono.HealthStatus {
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
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CommentModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"comment.add", func() error {
			return helper.RegisterTypedRequestReplyService(container, "comment.add", json.Unmarshal, json.Marshal, m.handleAdd)
		}},
		{"comment.list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "comment.list", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"comment.edit", func() error {
			return helper.RegisterTypedRequestReplyService(container, "comment.edit", json.Unmarshal, json.Marshal, m.handleEdit)
		}},
		{"comment.delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "comment.delete", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[comment] Registered services: add, list, edit, delete")
	return nil
}

func (m *CommentModule) actor(ctx context.Context, actorID string) (*user.Actor, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	actor, err := m.auth.GetActor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown actor", task.ErrNotPermitted)
	}
	return actor, nil
}

func (m *CommentModule) handleAdd(ctx context.Context, req AddCommentRequest, _ *mono.Msg) (CommentResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return CommentResponse{}, err
	}
	c, err := m.service.Add(actor, req)
	if err != nil {
		return CommentResponse{}, err
	}
	return m.service.Response(c), nil
}

func (m *CommentModule) handleList(ctx context.Context, req ListCommentsRequest, _ *mono.Msg) (ListCommentsResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return ListCommentsResponse{}, err
	}
	found, err := m.service.List(actor, req.TaskID)
	if err != nil {
		return ListCommentsResponse{}, err
	}

	resp := ListCommentsResponse{
		Comments: make([]CommentResponse, 0, len(found)),
		Total:    len(found),
	}
	for _, c := range found {
		resp.Comments = append(resp.Comments, m.service.Response(c))
	}
	return resp, nil
}

func (m *CommentModule) handleEdit(ctx context.Context, req EditCommentRequest, _ *mono.Msg) (CommentResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return CommentResponse{}, err
	}
	c, err := m.service.Edit(actor, req)
	if err != nil {
		return CommentResponse{}, err
	}
	return m.service.Response(c), nil
}

func (m *CommentModule) handleDelete(ctx context.Context, req DeleteCommentRequest, _ *mono.Msg) (DeleteCommentResponse, error) {
	actor, err := m.actor(ctx, req.ActorID)
	if err != nil {
		return DeleteCommentResponse{}, err
	}
	if err := m.service.Delete(actor, req); err != nil {
		return DeleteCommentResponse{ID: req.ID, Deleted: false}, err
	}
	return DeleteCommentResponse{ID: req.ID, Deleted: true}, nil
}
