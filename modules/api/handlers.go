package api

import (
	"strconv"

	"github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/modules/activity"
	"github.com/example/task-manager/modules/auth"
	taskmod "github.com/example/task-manager/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

const defaultActivityLimit = 20

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth     auth.AuthPort
	tasks    taskmod.TaskPort
	activity activity.ActivityPort
	logger   types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort taskmod.TaskPort, activityPort activity.ActivityPort, logger types.Logger) *Handlers {
	return &Handlers{
		auth:     authPort,
		tasks:    taskPort,
		activity: activityPort,
		logger:   logger,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	u, err := h.auth.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		ResultResponse: ResultResponse{Success: true, Message: "Registration successful"},
		User: UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
		},
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	session, tokens, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(LoginResponse{
		Session: session,
		TokenResponse: TokenResponse{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresIn:    tokens.ExpiresIn,
			TokenType:    tokens.TokenType,
		},
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	tokens, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	})
}

// Logout acknowledges a logout. Sessions live only in the client's token,
// so there is nothing to revoke on the server.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	return c.JSON(ResultResponse{Success: true, Message: "Logged out"})
}

// Me returns the current user's profile.
func (h *Handlers) Me(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	u, err := h.auth.GetUser(c.UserContext(), session.UserID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}

// ListTasks lists the caller's tasks, optionally filtered by
// status, priority and category query parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var f task.Filter
	if v := c.Query("status"); v != "" {
		s := task.Status(v)
		f.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		p := task.Priority(v)
		f.Priority = &p
	}
	if v := c.Query("category"); v != "" {
		f.Category = &v
	}

	tasks, err := h.tasks.List(c.UserContext(), session.UserID, f)
	if err != nil {
		return h.handleError(c, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return c.JSON(TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// CreateTask adds a task for the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.tasks.Add(c.UserContext(), session.UserID, task.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.Status(req.Status),
		Priority:    task.Priority(req.Priority),
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// GetTask returns one of the caller's tasks.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	t, found, err := h.tasks.Get(c.UserContext(), id, session.UserID)
	if err != nil {
		return h.handleError(c, err)
	}
	if !found {
		return notFound(c)
	}
	return c.JSON(t)
}

// UpdateTask applies a partial update to one of the caller's tasks.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	changes := task.Changes{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		changes.Status = &s
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		changes.Priority = &p
	}

	if err := h.tasks.Update(c.UserContext(), id, session.UserID, changes); err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(ResultResponse{Success: true, Message: "Task updated"})
}

// DeleteTask removes one of the caller's tasks.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	if err := h.tasks.Delete(c.UserContext(), id, session.UserID); err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(ResultResponse{Success: true, Message: "Task deleted"})
}

// Categories lists the caller's distinct task categories.
func (h *Handlers) Categories(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	categories, err := h.tasks.Categories(c.UserContext(), session.UserID)
	if err != nil {
		return h.handleError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// Stats returns task counts with display percentages.
func (h *Handlers) Stats(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	stats, err := h.tasks.Stats(c.UserContext(), session.UserID)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(toStatsResponse(stats))
}

// Activity returns the caller's recent task activity.
func (h *Handlers) Activity(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	limit := c.QueryInt("limit", defaultActivityLimit)
	entries, err := h.activity.List(c.UserContext(), session.UserID, limit)
	if err != nil {
		return h.handleError(c, err)
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func taskID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}

// toStatsResponse lists every known status and priority, including zero counts.
func toStatsResponse(s *task.Stats) StatsResponse {
	resp := StatsResponse{
		Total:    s.Total,
		Status:   make([]StatBucket, 0, len(task.Statuses)),
		Priority: make([]StatBucket, 0, len(task.Priorities)),
	}
	for _, st := range task.Statuses {
		n := s.Status[st]
		resp.Status = append(resp.Status, StatBucket{Name: string(st), Count: n, Percent: task.Percent(n, s.Total)})
	}
	for _, p := range task.Priorities {
		n := s.Priority[p]
		resp.Priority = append(resp.Priority, StatBucket{Name: string(p), Count: n, Percent: task.Percent(n, s.Total)})
	}
	return resp
}
