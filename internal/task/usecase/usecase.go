package usecase

import (
	"context"

	"taskmanager-backend/internal/task/domain"
	"taskmanager-backend/internal/task/dto"
)

// TaskUsecase defines the interface for task business logic. Every method
// is scoped to userID; a task owned by someone else is reported the same way
// as a missing one.
type TaskUsecase interface {
	// CreateTask creates a task owned by userID
	CreateTask(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*domain.Task, error)

	// GetUserTasks lists the user's tasks, newest first
	GetUserTasks(ctx context.Context, userID string) ([]*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// UpdateTask applies a partial update and returns the stored task
	UpdateTask(ctx context.Context, userID, taskID string, updates *dto.TaskUpdateRequest) (*domain.Task, error)

	// UpdateTaskStatus changes only the status
	UpdateTaskStatus(ctx context.Context, userID, taskID, status string) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(ctx context.Context, userID, taskID string) error

	// FilterTasks filters by status and search text and sorts the result
	FilterTasks(ctx context.Context, userID string, query *dto.FilterQuery) ([]*domain.Task, error)
}
