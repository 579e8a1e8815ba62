// Package api exposes the taskboard over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/taskboard/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app              *fiber.App
	port             string
	authContainer    mono.ServiceContainer
	taskContainer    mono.ServiceContainer
	commentContainer mono.ServiceContainer
	filterContainer  mono.ServiceContainer
	boardContainer   mono.ServiceContainer
	authAdapter      auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		port: port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "comment", "filterstore", "board"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskContainer = container
	case "comment":
		m.commentContainer = container
	case "filterstore":
		m.filterContainer = container
	case "board":
		m.boardContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil || m.taskContainer == nil || m.commentContainer == nil ||
		m.filterContainer == nil || m.boardContainer == nil {
		return fmt.Errorf("module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.taskContainer, m.commentContainer, m.filterContainer, m.boardContainer)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status: "healthy",
			Module: "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))

	protected.Get("/profile", handlers.Profile)

	protected.Post("/tasks", handlers.CreateTask)
	protected.Get("/tasks", handlers.ListTasks)
	protected.Get("/tasks/:id", handlers.GetTask)
	protected.Patch("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)
	protected.Post("/tasks/:id/transition", handlers.TransitionTask)
	protected.Post("/tasks/:id/take", handlers.TakeTask)
	protected.Post("/tasks/:id/release", handlers.ReleaseTask)
	protected.Post("/tasks/:id/assign", handlers.AssignTask)

	protected.Get("/tasks/:id/comments", handlers.ListComments)
	protected.Post("/tasks/:id/comments", handlers.AddComment)
	protected.Patch("/comments/:id", handlers.EditComment)
	protected.Delete("/comments/:id", handlers.DeleteComment)

	protected.Get("/filters", handlers.GetFilters)
	protected.Put("/filters", handlers.SaveFilters)
	protected.Delete("/filters", handlers.ResetFilters)

	protected.Get("/board", handlers.Board)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
