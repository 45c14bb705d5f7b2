package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/task-manager/config"
	"github.com/example/task-manager/database"
	"github.com/example/task-manager/modules/activity"
	"github.com/example/task-manager/modules/api"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// fatal releases the database before exiting; log.Fatalf skips deferred calls.
	fatal := func(format string, args ...any) {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		log.Fatalf(format, args...)
	}

	if err := database.Migrate(db); err != nil {
		fatal("Failed to migrate database: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		fatal("Failed to create application: %v", err)
	}

	if err := registerModules(app, cfg, db); err != nil {
		fatal("Failed to register modules: %v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		fatal("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				if err := app.Stop(ctx); err != nil {
					return err
				}
				return database.Close(db)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// registerModules registers the stores first, then the HTTP adapter that depends on them.
func registerModules(app mono.MonoApplication, cfg *config.Config, db *gorm.DB) error {
	logger := app.Logger()

	modules := []mono.Module{
		auth.NewModule(db, auth.Options{
			BcryptCost: cfg.BcryptCost,
			JWT: auth.JWTConfig{
				SecretKey:            cfg.JWT.SecretKey,
				Issuer:               cfg.JWT.Issuer,
				AccessTokenDuration:  cfg.JWT.AccessTokenDuration,
				RefreshTokenDuration: cfg.JWT.RefreshTokenDuration,
			},
		}, logger),
		task.NewModule(db, logger),
		activity.NewModule(logger),
		api.NewModule(api.Options{
			Port:          cfg.HTTPPort,
			AuthRateLimit: cfg.RateLimit.Max,
			AuthWindow:    cfg.RateLimit.Window,
			RedisAddr:     cfg.RateLimit.RedisAddr,
		}, logger),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			return fmt.Errorf("register %s: %w", m.Name(), err)
		}
	}
	return nil
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Database: %s (%s)", cfg.Database.Driver, cfg.Database.Location)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register      - Register a new user")
	log.Println("  POST   /api/v1/auth/login         - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh       - Refresh access token")
	log.Println("  POST   /api/v1/auth/logout        - Logout")
	log.Println("  GET    /health                    - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/me                 - Current user")
	log.Println("  GET    /api/v1/tasks              - List tasks (?status=&priority=&category=)")
	log.Println("  POST   /api/v1/tasks              - Add a task")
	log.Println("  GET    /api/v1/tasks/categories   - Distinct categories")
	log.Println("  GET    /api/v1/tasks/stats        - Task statistics")
	log.Println("  GET    /api/v1/tasks/:id          - Get a task")
	log.Println("  PATCH  /api/v1/tasks/:id          - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id          - Delete a task")
	log.Println("  GET    /api/v1/activity           - Recent task activity")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
