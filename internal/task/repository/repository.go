package repository

import (
	"context"

	"taskmanager-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create assigns an ID if missing and inserts the task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID finds a task by its ID regardless of owner; (nil, nil) if absent
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByUserID returns all tasks of a user, newest first
	FindByUserID(ctx context.Context, userID string) ([]*domain.Task, error)

	// Filter returns a user's tasks matching filter in the requested order
	Filter(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error)

	// UpdateFields sets the given columns on a task owned by userID and
	// reports whether such a task exists
	UpdateFields(ctx context.Context, id, userID string, fields map[string]interface{}) (bool, error)

	// Delete removes a task owned by userID and reports whether it existed
	Delete(ctx context.Context, id, userID string) (bool, error)
}
