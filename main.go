package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskboard/modules/api"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/board"
	"github.com/example/taskboard/modules/comment"
	"github.com/example/taskboard/modules/filterstore"
	"github.com/example/taskboard/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskboard ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())        // Independent (accounts and tokens)
	app.Register(filterstore.NewModule()) // Independent (per-actor filter state)
	app.Register(tasks.NewModule())       // Depends on auth
	app.Register(comment.NewModule())     // Depends on auth, task
	app.Register(board.NewModule())       // Depends on task, filterstore
	app.Register(api.NewModule())         // Depends on everything

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register         - Register a new actor")
	log.Println("  POST   /api/v1/auth/login            - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh          - Refresh access token")
	log.Println("  GET    /health                       - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile               - Current actor profile")
	log.Println("  POST   /api/v1/tasks                 - Create a task")
	log.Println("  GET    /api/v1/tasks?scope=          - List tasks by scope")
	log.Println("  GET    /api/v1/tasks/:id             - Get a task")
	log.Println("  PATCH  /api/v1/tasks/:id             - Edit task fields (creator)")
	log.Println("  DELETE /api/v1/tasks/:id             - Delete a task (admin)")
	log.Println("  POST   /api/v1/tasks/:id/transition  - Change task status")
	log.Println("  POST   /api/v1/tasks/:id/take        - Self-assign an unassigned task")
	log.Println("  POST   /api/v1/tasks/:id/release     - Return a task to the pool")
	log.Println("  POST   /api/v1/tasks/:id/assign      - Set or clear the responsible")
	log.Println("  GET    /api/v1/tasks/:id/comments    - List comments")
	log.Println("  POST   /api/v1/tasks/:id/comments    - Add a comment")
	log.Println("  PATCH  /api/v1/comments/:id          - Edit own comment")
	log.Println("  DELETE /api/v1/comments/:id          - Delete own comment")
	log.Println("  GET    /api/v1/filters               - Get saved board filters")
	log.Println("  PUT    /api/v1/filters               - Save board filters")
	log.Println("  DELETE /api/v1/filters               - Reset board filters")
	log.Println("  GET    /api/v1/board                 - Render the grouped board")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
