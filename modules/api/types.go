package api

import (
	"time"

	"github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
)

// CredentialsRequest is the body of register and login requests.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// LoginResponse pairs the session identity with its tokens.
type LoginResponse struct {
	Session user.Session `json:"session"`
	TokenResponse
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ResultResponse is the (success, message) body for mutations.
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	ResultResponse
	User UserResponse `json:"user"`
}

// CreateTaskRequest is the body of a create-task request.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest is the body of a partial update. Omitted fields are unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	DueDate     *string `json:"due_date"`
}

// TaskListResponse represents a list of tasks.
type TaskListResponse struct {
	Tasks []task.Task `json:"tasks"`
	Total int         `json:"total"`
}

// StatBucket is one count with its share of the total.
type StatBucket struct {
	Name    string `json:"name"`
	Count   int64  `json:"count"`
	Percent int64  `json:"percent"`
}

// StatsResponse represents task statistics with display percentages.
type StatsResponse struct {
	Total    int64        `json:"total"`
	Status   []StatBucket `json:"status"`
	Priority []StatBucket `json:"priority"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
