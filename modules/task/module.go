package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/task-manager/database"
	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// TaskModule is the task store: it owns the tasks table and publishes
// lifecycle events.
type TaskModule struct {
	db       *gorm.DB
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule backed by db.
func NewModule(db *gorm.DB, logger types.Logger) *TaskModule {
	return &TaskModule{
		db:     db,
		logger: logger.WithModule("task"),
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-task", json.Unmarshal, json.Marshal, m.addTask,
	); err != nil {
		return fmt.Errorf("failed to register add-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-categories", json.Unmarshal, json.Marshal, m.listCategories,
	); err != nil {
		return fmt.Errorf("failed to register list-categories service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "task-stats", json.Unmarshal, json.Marshal, m.taskStats,
	); err != nil {
		return fmt.Errorf("failed to register task-stats service: %w", err)
	}

	m.logger.Info("Registered task services", "services", []string{
		"add-task", "get-task", "list-tasks", "update-task", "delete-task", "list-categories", "task-stats",
	})
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.db == nil {
		return fmt.Errorf("task: database not configured")
	}
	m.service = NewService(NewRepository(m.db))
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, task events will not be published")
	}
	m.logger.Info("Task module started")
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	if err := database.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

func (m *TaskModule) addTask(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Add(ctx, req.UserID, req.Task)
	if err != nil {
		m.logFailure("add", err, "user_id", req.UserID)
		return TaskResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	m.logger.Info("Task added", "task_id", t.ID, "user_id", t.UserID)
	m.publish(func(bus mono.EventBus) error {
		return events.TaskCreatedV1.Publish(bus, events.TaskCreatedEvent{
			TaskID:    t.ID,
			UserID:    t.UserID,
			Title:     t.Title,
			Status:    string(t.Status),
			Priority:  string(t.Priority),
			CreatedAt: t.CreatedAt,
		}, nil)
	}, "TaskCreated", t.ID)

	return TaskResponse{Result: apperr.OK("task added"), Task: t}, nil
}

func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (GetTaskResponse, error) {
	t, found, err := m.service.Get(ctx, req.TaskID, req.UserID)
	if err != nil {
		m.logFailure("get", err, "task_id", req.TaskID, "user_id", req.UserID)
		return GetTaskResponse{Result: apperr.ResultOf(err, "")}, nil
	}
	return GetTaskResponse{Result: apperr.OK(""), Found: found, Task: t}, nil
}

func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.UserID, req.Filter)
	if err != nil {
		m.logFailure("list", err, "user_id", req.UserID)
		return ListTasksResponse{Result: apperr.ResultOf(err, ""), Tasks: []domain.Task{}}, nil
	}
	return ListTasksResponse{Result: apperr.OK(""), Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (ResultResponse, error) {
	fields, err := m.service.Update(ctx, req.TaskID, req.UserID, req.Changes)
	if err != nil {
		m.logFailure("update", err, "task_id", req.TaskID, "user_id", req.UserID)
		return ResultResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	m.logger.Info("Task updated", "task_id", req.TaskID, "fields", fields)
	event := events.TaskUpdatedEvent{
		TaskID:    req.TaskID,
		UserID:    req.UserID,
		Fields:    fields,
		UpdatedAt: time.Now(),
	}
	if req.Changes.Status != nil {
		event.Status = string(*req.Changes.Status)
	}
	m.publish(func(bus mono.EventBus) error {
		return events.TaskUpdatedV1.Publish(bus, event, nil)
	}, "TaskUpdated", req.TaskID)

	return ResultResponse{Result: apperr.OK("task updated")}, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (ResultResponse, error) {
	if err := m.service.Delete(ctx, req.TaskID, req.UserID); err != nil {
		m.logFailure("delete", err, "task_id", req.TaskID, "user_id", req.UserID)
		return ResultResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	m.logger.Info("Task deleted", "task_id", req.TaskID, "user_id", req.UserID)
	m.publish(func(bus mono.EventBus) error {
		return events.TaskDeletedV1.Publish(bus, events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			UserID:    req.UserID,
			DeletedAt: time.Now(),
		}, nil)
	}, "TaskDeleted", req.TaskID)

	return ResultResponse{Result: apperr.OK("task deleted")}, nil
}

func (m *TaskModule) listCategories(ctx context.Context, req CategoriesRequest, _ *mono.Msg) (CategoriesResponse, error) {
	categories, err := m.service.Categories(ctx, req.UserID)
	if err != nil {
		m.logFailure("categories", err, "user_id", req.UserID)
		return CategoriesResponse{Result: apperr.ResultOf(err, ""), Categories: []string{}}, nil
	}
	return CategoriesResponse{Result: apperr.OK(""), Categories: categories}, nil
}

func (m *TaskModule) taskStats(ctx context.Context, req StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	stats, err := m.service.Stats(ctx, req.UserID)
	if err != nil {
		m.logFailure("stats", err, "user_id", req.UserID)
		return StatsResponse{Result: apperr.ResultOf(err, "")}, nil
	}
	return StatsResponse{Result: apperr.OK(""), Stats: stats}, nil
}

// publish emits an event. Publishing is best-effort and never fails the operation.
func (m *TaskModule) publish(send func(mono.EventBus) error, name string, taskID int64) {
	if m.eventBus == nil {
		return
	}
	if err := send(m.eventBus); err != nil {
		m.logger.Warn("Failed to publish event", "event", name, "task_id", taskID, "error", err)
	}
}

func (m *TaskModule) logFailure(op string, err error, args ...any) {
	args = append([]any{"op", op, "code", apperr.CodeOf(err)}, args...)
	if errors.Is(err, apperr.ErrPersistence) || apperr.CodeOf(err) == apperr.CodeInternal {
		m.logger.WithError(err).Error("Task operation failed", args...)
		return
	}
	m.logger.Debug("Task request rejected", args...)
}
