package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/task-manager/domain/apperr"
	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ListActivityRequest represents a list-activity request.
type ListActivityRequest struct {
	UserID int64 `json:"user_id"`
	Limit  int   `json:"limit"`
}

// ListActivityResponse represents a list-activity response.
type ListActivityResponse struct {
	apperr.Result
	Entries []Entry `json:"entries"`
}

// ActivityModule records task events into a per-user feed.
type ActivityModule struct {
	feed   *Feed
	logger types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

func NewModule(logger types.Logger) *ActivityModule {
	return &ActivityModule{
		feed:   NewFeed(DefaultCapacity),
		logger: logger.WithModule("activity"),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskCreated", "TaskUpdated", "TaskDeleted"})
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-activity", json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register list-activity service: %w", err)
	}
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.feed.Record(event.UserID, event.TaskID, "task_created",
		fmt.Sprintf("Created task %q (%s, %s priority)", event.Title, event.Status, event.Priority),
		event.CreatedAt)
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	message := fmt.Sprintf("Updated task %d: %s", event.TaskID, strings.Join(event.Fields, ", "))
	if event.Status != "" {
		message = fmt.Sprintf("%s (status %s)", message, event.Status)
	}
	m.feed.Record(event.UserID, event.TaskID, "task_updated", message, event.UpdatedAt)
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.feed.Record(event.UserID, event.TaskID, "task_deleted",
		fmt.Sprintf("Deleted task %d", event.TaskID), event.DeletedAt)
	return nil
}

func (m *ActivityModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	return ListActivityResponse{
		Result:  apperr.OK(""),
		Entries: m.feed.List(req.UserID, req.Limit),
	}, nil
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Activity module started", "capacity_per_user", m.feed.capacity)
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
