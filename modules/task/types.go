package task

import (
	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
)

// AddTaskRequest represents an add-task request.
type AddTaskRequest struct {
	UserID int64          `json:"user_id"`
	Task   domain.NewTask `json:"task"`
}

// TaskResponse carries a single task.
type TaskResponse struct {
	apperr.Result
	Task *domain.Task `json:"task,omitempty"`
}

// GetTaskRequest represents a get-task request.
type GetTaskRequest struct {
	TaskID int64 `json:"task_id"`
	UserID int64 `json:"user_id"`
}

// GetTaskResponse reports Found=false for missing or foreign tasks.
type GetTaskResponse struct {
	apperr.Result
	Found bool         `json:"found"`
	Task  *domain.Task `json:"task,omitempty"`
}

// ListTasksRequest represents a list-tasks request.
type ListTasksRequest struct {
	UserID int64         `json:"user_id"`
	Filter domain.Filter `json:"filter"`
}

// ListTasksResponse represents a list-tasks response.
type ListTasksResponse struct {
	apperr.Result
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// UpdateTaskRequest represents an update-task request.
type UpdateTaskRequest struct {
	TaskID  int64          `json:"task_id"`
	UserID  int64          `json:"user_id"`
	Changes domain.Changes `json:"changes"`
}

// DeleteTaskRequest represents a delete-task request.
type DeleteTaskRequest struct {
	TaskID int64 `json:"task_id"`
	UserID int64 `json:"user_id"`
}

// CategoriesRequest represents a list-categories request.
type CategoriesRequest struct {
	UserID int64 `json:"user_id"`
}

// CategoriesResponse represents a list-categories response.
type CategoriesResponse struct {
	apperr.Result
	Categories []string `json:"categories"`
}

// StatsRequest represents a task-stats request.
type StatsRequest struct {
	UserID int64 `json:"user_id"`
}

// StatsResponse represents a task-stats response.
type StatsResponse struct {
	apperr.Result
	Stats *domain.Stats `json:"stats,omitempty"`
}

// ResultResponse is returned by operations that only report success.
type ResultResponse struct {
	apperr.Result
}
