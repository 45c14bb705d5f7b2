package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
)

// Service is the task store. It validates input at the store boundary and
// enforces ownership through the repository.
type Service struct {
	repo *Repository
}

// NewService creates a new task Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and inserts a new task owned by userID.
func (s *Service) Add(ctx context.Context, userID int64, in domain.NewTask) (*domain.Task, error) {
	if userID <= 0 {
		return nil, apperr.Validation("user id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusNotStarted
	}
	if !status.Valid() {
		return nil, apperr.Validation("invalid status %q", status)
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperr.Validation("invalid priority %q", priority)
	}
	if err := validateDueDate(in.DueDate); err != nil {
		return nil, err
	}

	t := &domain.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: optional(in.Description),
		Status:      status,
		Priority:    priority,
		Category:    optional(in.Category),
		DueDate:     optional(in.DueDate),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the user's tasks matching the filter, dated tasks first.
func (s *Service) List(ctx context.Context, userID int64, f domain.Filter) ([]domain.Task, error) {
	return s.repo.List(ctx, userID, f)
}

// Get returns the task if it exists and is owned by userID.
// found is false when it is missing or belongs to someone else.
func (s *Service) Get(ctx context.Context, id, userID int64) (t *domain.Task, found bool, err error) {
	t, err = s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return t, true, nil
}

// Update applies only the supplied fields. It fails with
// apperr.ErrNoFieldsProvided before touching the database when nothing is supplied,
// and with apperr.ErrNotFound when no task matches id and userID.
func (s *Service) Update(ctx context.Context, id, userID int64, c domain.Changes) ([]string, error) {
	if c.IsEmpty() {
		return nil, apperr.ErrNoFieldsProvided
	}
	columns, err := changeColumns(c)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, userID, columns); err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(columns))
	for _, name := range columnOrder {
		if _, ok := columns[name]; ok {
			fields = append(fields, name)
		}
	}
	return fields, nil
}

// Delete removes the task owned by userID.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// Categories returns the user's distinct categories.
func (s *Service) Categories(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.Categories(ctx, userID)
}

// Stats returns task counts by status and priority.
func (s *Service) Stats(ctx context.Context, userID int64) (*domain.Stats, error) {
	return s.repo.Stats(ctx, userID)
}

var columnOrder = []string{"title", "description", "status", "priority", "category", "due_date"}

// changeColumns validates c and maps it to column values.
// Empty optional strings become NULL.
func changeColumns(c domain.Changes) (map[string]any, error) {
	columns := make(map[string]any)

	if c.Title != nil {
		if strings.TrimSpace(*c.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		columns["title"] = *c.Title
	}
	if c.Description != nil {
		columns["description"] = optional(*c.Description)
	}
	if c.Status != nil {
		if !c.Status.Valid() {
			return nil, apperr.Validation("invalid status %q", *c.Status)
		}
		columns["status"] = *c.Status
	}
	if c.Priority != nil {
		if !c.Priority.Valid() {
			return nil, apperr.Validation("invalid priority %q", *c.Priority)
		}
		columns["priority"] = *c.Priority
	}
	if c.Category != nil {
		columns["category"] = optional(*c.Category)
	}
	if c.DueDate != nil {
		if err := validateDueDate(*c.DueDate); err != nil {
			return nil, err
		}
		columns["due_date"] = optional(*c.DueDate)
	}
	return columns, nil
}

func validateDueDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DueDateLayout, s); err != nil {
		return apperr.Validation("due date %q must be YYYY-MM-DD", s)
	}
	return nil
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
