package task

import (
	"time"
)

// Status is the lifecycle state of a task.
type Status string

// Task statuses. Pending is the state every task starts in.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority orders tasks by importance.
type Priority string

// Task priorities. Medium is the default when none is given.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task represents a user-owned unit of work.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	UserID      string    `gorm:"index;not null;type:text" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	Status      Status    `gorm:"size:20;not null;default:pending" json:"status"`
	Priority    Priority  `gorm:"size:10;not null;default:medium" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Completed reports whether the task has been completed.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// ValidStatus reports whether s is a member of the status domain.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is a member of the priority domain.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
