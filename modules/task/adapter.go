package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort is what other modules use to reach the task store.
type TaskPort interface {
	Add(ctx context.Context, userID int64, in domain.NewTask) (*domain.Task, error)
	List(ctx context.Context, userID int64, f domain.Filter) ([]domain.Task, error)
	Get(ctx context.Context, taskID, userID int64) (*domain.Task, bool, error)
	Update(ctx context.Context, taskID, userID int64, c domain.Changes) error
	Delete(ctx context.Context, taskID, userID int64) error
	Categories(ctx context.Context, userID int64) ([]string, error)
	Stats(ctx context.Context, userID int64) (*domain.Stats, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{container: container}
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx, container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

func (a *TaskAdapter) Add(ctx context.Context, userID int64, in domain.NewTask) (*domain.Task, error) {
	req := AddTaskRequest{UserID: userID, Task: in}
	var resp TaskResponse
	if err := call(ctx, a.container, "add-task", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func (a *TaskAdapter) List(ctx context.Context, userID int64, f domain.Filter) ([]domain.Task, error) {
	req := ListTasksRequest{UserID: userID, Filter: f}
	var resp ListTasksResponse
	if err := call(ctx, a.container, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (a *TaskAdapter) Get(ctx context.Context, taskID, userID int64) (*domain.Task, bool, error) {
	req := GetTaskRequest{TaskID: taskID, UserID: userID}
	var resp GetTaskResponse
	if err := call(ctx, a.container, "get-task", &req, &resp); err != nil {
		return nil, false, err
	}
	if err := resp.Err(); err != nil {
		return nil, false, err
	}
	return resp.Task, resp.Found, nil
}

func (a *TaskAdapter) Update(ctx context.Context, taskID, userID int64, c domain.Changes) error {
	req := UpdateTaskRequest{TaskID: taskID, UserID: userID, Changes: c}
	var resp ResultResponse
	if err := call(ctx, a.container, "update-task", &req, &resp); err != nil {
		return err
	}
	return resp.Err()
}

func (a *TaskAdapter) Delete(ctx context.Context, taskID, userID int64) error {
	req := DeleteTaskRequest{TaskID: taskID, UserID: userID}
	var resp ResultResponse
	if err := call(ctx, a.container, "delete-task", &req, &resp); err != nil {
		return err
	}
	return resp.Err()
}

func (a *TaskAdapter) Categories(ctx context.Context, userID int64) ([]string, error) {
	req := CategoriesRequest{UserID: userID}
	var resp CategoriesResponse
	if err := call(ctx, a.container, "list-categories", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (a *TaskAdapter) Stats(ctx context.Context, userID int64) (*domain.Stats, error) {
	req := StatsRequest{UserID: userID}
	var resp StatsResponse
	if err := call(ctx, a.container, "task-stats", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Stats, nil
}
