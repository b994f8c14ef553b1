package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fajshah/faj-todo-phase2/modules/api"
	"github.com/fajshah/faj-todo-phase2/modules/auth"
	"github.com/fajshah/faj-todo-phase2/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then dependent modules.
	app.Register(auth.NewModule())
	app.Register(todo.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Todo service started")
	log.Println("  POST   /api/auth/register     - Register a new user")
	log.Println("  POST   /api/auth/login        - Login and get a token")
	log.Println("  GET    /api/todos             - List todos (page, limit, status, priority)")
	log.Println("  POST   /api/todos             - Create a todo")
	log.Println("  GET    /api/todos/:id         - Get a todo")
	log.Println("  PUT    /api/todos/:id         - Update a todo")
	log.Println("  DELETE /api/todos/:id         - Delete a todo")
	log.Println("  PATCH  /api/todos/:id/toggle  - Toggle completion")
	log.Println("  GET    /health                - Health check")

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
