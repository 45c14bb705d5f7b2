package task

import (
	"time"

	"github.com/example/task-manager/domain/user"
)

// Status is the progress state of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DueDateLayout is the ISO-8601 calendar date format used for due dates.
const DueDateLayout = "2006-01-02"

// Task is a unit of work owned by a single user.
type Task struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	User        *user.User `gorm:"foreignKey:UserID" json:"-"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      Status     `gorm:"type:text;default:not_started" json:"status"`
	Priority    Priority   `gorm:"type:text;default:medium" json:"priority"`
	Category    *string    `gorm:"type:text" json:"category"`
	DueDate     *string    `gorm:"type:text" json:"due_date"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// NewTask holds the fields supplied when adding a task.
// Empty Status and Priority take their defaults.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

// Filter narrows a task listing. Nil fields are not applied.
type Filter struct {
	Status   *Status   `json:"status,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	Category *string   `json:"category,omitempty"`
}

// Changes is a partial update. Only non-nil fields are written.
// An empty string for Description, Category or DueDate clears the field.
type Changes struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Category    *string   `json:"category,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (c Changes) IsEmpty() bool {
	return c.Title == nil &&
		c.Description == nil &&
		c.Status == nil &&
		c.Priority == nil &&
		c.Category == nil &&
		c.DueDate == nil
}

// Stats aggregates a user's tasks by status and priority.
type Stats struct {
	Total    int64              `json:"total"`
	Status   map[Status]int64   `json:"status"`
	Priority map[Priority]int64 `json:"priority"`
}

// Percent returns round(count / total * 100), or 0 when total is 0.
func Percent(count, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (count*200 + total) / (total * 2)
}
