package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is how many entries are kept per user.
const DefaultCapacity = 50

// Entry is one item in a user's activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TaskID    int64     `json:"task_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Feed keeps the most recent entries per user in memory.
type Feed struct {
	mu       sync.RWMutex
	capacity int
	entries  map[int64][]Entry
}

// NewFeed creates a Feed. A non-positive capacity uses DefaultCapacity.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		entries:  make(map[int64][]Entry),
	}
}

// Record appends an entry for userID, dropping the oldest beyond capacity.
func (f *Feed) Record(userID, taskID int64, entryType, message string, at time.Time) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Type:      entryType,
		TaskID:    taskID,
		Message:   message,
		Timestamp: at,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	list := append(f.entries[userID], e)
	if over := len(list) - f.capacity; over > 0 {
		list = append([]Entry(nil), list[over:]...)
	}
	f.entries[userID] = list
	return e
}

// List returns up to limit entries for userID, newest first.
// A non-positive limit returns all kept entries.
func (f *Feed) List(userID int64, limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	list := f.entries[userID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]Entry, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out
}
