package task

import (
	"context"
	"errors"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
	"gorm.io/gorm"
)

// listOrder puts dated tasks first by due date, undated tasks last, and
// breaks ties by newest first. id breaks ties within one clock tick.
var listOrder = []string{
	"CASE WHEN due_date IS NULL THEN 1 ELSE 0 END",
	"due_date ASC",
	"created_at DESC",
	"id DESC",
}

// Repository provides access to task storage. Every query is scoped to
// the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a task and fills in its generated fields.
func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return apperr.Persistence("create task", err)
	}
	return nil
}

// FindByID returns the task with id owned by userID, or apperr.ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id, userID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Persistence("find task", err)
	}
	return &t, nil
}

// List returns the user's tasks matching every non-nil filter field.
func (r *Repository) List(ctx context.Context, userID int64, f domain.Filter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		query = query.Where("priority = ?", *f.Priority)
	}
	if f.Category != nil {
		query = query.Where("category = ?", *f.Category)
	}
	for _, o := range listOrder {
		query = query.Order(o)
	}

	tasks := make([]domain.Task, 0)
	if err := query.Find(&tasks).Error; err != nil {
		return nil, apperr.Persistence("list tasks", err)
	}
	return tasks, nil
}

// Update writes the given columns on the task owned by userID.
// A nil value sets the column to NULL.
func (r *Repository) Update(ctx context.Context, id, userID int64, columns map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(columns)
	if result.Error != nil {
		return apperr.Persistence("update task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the task owned by userID.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Task{})
	if result.Error != nil {
		return apperr.Persistence("delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Categories returns the user's distinct non-empty categories in order.
func (r *Repository) Categories(ctx context.Context, userID int64) ([]string, error) {
	categories := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("user_id = ? AND category IS NOT NULL AND category <> ''", userID).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperr.Persistence("list categories", err)
	}
	return categories, nil
}

type groupCount struct {
	Name  string
	Total int64
}

// Stats counts the user's tasks grouped by status and by priority.
// Total is the sum of the status counts.
func (r *Repository) Stats(ctx context.Context, userID int64) (*domain.Stats, error) {
	byStatus, err := r.countBy(ctx, userID, "status")
	if err != nil {
		return nil, err
	}
	byPriority, err := r.countBy(ctx, userID, "priority")
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		Status:   make(map[domain.Status]int64, len(byStatus)),
		Priority: make(map[domain.Priority]int64, len(byPriority)),
	}
	for _, g := range byStatus {
		stats.Status[domain.Status(g.Name)] = g.Total
		stats.Total += g.Total
	}
	for _, g := range byPriority {
		stats.Priority[domain.Priority(g.Name)] = g.Total
	}
	return stats, nil
}

func (r *Repository) countBy(ctx context.Context, userID int64, column string) ([]groupCount, error) {
	var groups []groupCount
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select(column+" AS name, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group(column).
		Scan(&groups).Error
	if err != nil {
		return nil, apperr.Persistence("count tasks by "+column, err)
	}
	return groups, nil
}
