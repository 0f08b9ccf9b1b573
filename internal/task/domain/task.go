package domain

import (
	"strings"
	"time"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is a to-do item owned by exactly one user
type Task struct {
	ID          string     `json:"_id" gorm:"primaryKey"`
	UserID      string     `json:"user" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" gorm:"not null;default:pending"`
	Priority    Priority   `json:"priority" gorm:"not null;default:medium"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ParseStatus accepts the enum values plus "in progress", the spelling used
// by older clients.
func ParseStatus(s string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TaskStatusPending):
		return TaskStatusPending, true
	case string(TaskStatusInProgress), "in progress", "in-progress":
		return TaskStatusInProgress, true
	case string(TaskStatusCompleted):
		return TaskStatusCompleted, true
	default:
		return "", false
	}
}

func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	default:
		return "", false
	}
}

// SortColumns maps the accepted sortBy values to columns.
var SortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"deadline":  "deadline",
}

const DefaultSortBy = "createdAt"

// TaskFilter is a validated filter/sort request. Zero values mean "no
// constraint"; Column must come from SortColumns.
type TaskFilter struct {
	Status *TaskStatus
	Search string
	Column string
	Desc   bool
}
