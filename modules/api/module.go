package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/example/task-manager/modules/activity"
	"github.com/example/task-manager/modules/auth"
	taskmod "github.com/example/task-manager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
)

// Options configures the HTTP API.
type Options struct {
	Port          int
	AuthRateLimit int
	AuthWindow    time.Duration
	// RedisAddr holds rate-limit counters in Redis when set.
	RedisAddr string
}

// APIModule is the HTTP driving adapter in front of the stores.
type APIModule struct {
	opts         Options
	app          *fiber.App
	storage      *redis.Storage
	authPort     auth.AuthPort
	taskPort     taskmod.TaskPort
	activityPort activity.ActivityPort
	logger       types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(opts Options, logger types.Logger) *APIModule {
	return &APIModule{
		opts:   opts,
		logger: logger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "task":
		m.taskPort = taskmod.NewTaskAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil || m.taskPort == nil || m.activityPort == nil {
		return errors.New("api: auth, task and activity dependencies must be set")
	}

	var storage fiber.Storage
	if m.opts.RedisAddr != "" {
		host, port := parseRedisAddr(m.opts.RedisAddr)
		m.storage = redis.New(redis.Config{
			Host:     host,
			Port:     port,
			PoolSize: 10,
		})
		storage = m.storage
		m.logger.Info("Rate limit counters stored in Redis", "addr", m.opts.RedisAddr)
	}

	m.app = m.newApp(storage)

	addr := fmt.Sprintf(":%d", m.opts.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	err := m.app.Shutdown()
	if m.storage != nil {
		if cerr := m.storage.Close(); cerr != nil {
			m.logger.Error("Failed to close Redis storage", "error", cerr)
		}
	}
	return err
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.opts.Port,
		},
	}
}

// newApp builds the Fiber application with middleware and routes.
func (m *APIModule) newApp(limiterStorage fiber.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	handlers := NewHandlers(m.authPort, m.taskPort, m.activityPort, m.logger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	limited := RateLimit(m.opts.AuthRateLimit, m.opts.AuthWindow, limiterStorage)
	authRoutes.Post("/register", limited, handlers.Register)
	authRoutes.Post("/login", limited, handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)
	authRoutes.Post("/logout", handlers.Logout)

	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authPort))
	protected.Get("/me", handlers.Me)
	protected.Get("/activity", handlers.Activity)

	tasks := protected.Group("/tasks")
	tasks.Get("/", handlers.ListTasks)
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/categories", handlers.Categories)
	tasks.Get("/stats", handlers.Stats)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Patch("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)

	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, defaultPort
	}
	return host, port
}
